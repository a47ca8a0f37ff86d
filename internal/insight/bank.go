package insight

// skillQuestionBank maps a detected skill to its pool of quiz
// questions.
var skillQuestionBank = map[string][]bankQuestion{
	"python": {
		{"Python is mainly used for?", []string{"Web development", "Data analysis", "Mobile apps", "All of the above"}, "mcq", 3},
		{"Python supports object-oriented programming.", []string{"True", "False"}, "tf", 0},
		{"Which library is used for data analysis in Python?", []string{"NumPy", "React", "Spring", "Django"}, "mcq", 0},
	},
	"java": {
		{"Java is a ___ language.", []string{"Procedural", "Object-oriented", "Functional", "Markup"}, "mcq", 1},
		{"Java runs on JVM.", []string{"True", "False"}, "tf", 0},
		{"Which framework is commonly used with Java for web applications?", []string{"Spring", "Angular", "Flask", "React"}, "mcq", 0},
	},
	"angular": {
		{"Angular is a framework for?", []string{"Backend", "Frontend", "Database", "Operating System"}, "mcq", 1},
		{"Angular uses TypeScript.", []string{"True", "False"}, "tf", 0},
		{"Which directive is used for conditional rendering in Angular?", []string{"*ngIf", "*ngFor", "*ngSwitch", "*ngModel"}, "mcq", 0},
	},
	"react": {
		{"React is mainly used for?", []string{"Backend", "Frontend", "Database", "Networking"}, "mcq", 1},
		{"React is a JavaScript library.", []string{"True", "False"}, "tf", 0},
		{"Which hook is used to manage state in React?", []string{"useState", "useEffect", "useReducer", "useContext"}, "mcq", 0},
	},
	"docker": {
		{"Docker is mainly used for?", []string{"Containerization", "Database management", "Networking", "Machine Learning"}, "mcq", 0},
		{"Docker allows isolated environments.", []string{"True", "False"}, "tf", 0},
		{"Which command is used to build a Docker image?", []string{"docker build", "docker run", "docker compose", "docker start"}, "mcq", 0},
	},
	"aws": {
		{"AWS is a cloud service provider.", []string{"True", "False"}, "tf", 0},
		{"Which AWS service is for serverless functions?", []string{"EC2", "Lambda", "S3", "RDS"}, "mcq", 1},
		{"S3 is mainly used for?", []string{"Compute", "Storage", "Networking", "Database"}, "mcq", 1},
	},
	"sql": {
		{"SQL is used for?", []string{"Data querying", "Machine learning", "Web design", "Networking"}, "mcq", 0},
		{"SQL databases are relational.", []string{"True", "False"}, "tf", 0},
		{"Which SQL command is used to remove rows?", []string{"DELETE", "DROP", "REMOVE", "TRUNCATE"}, "mcq", 0},
	},
	"flask": {
		{"Flask is a framework for?", []string{"Backend Web Development", "Frontend", "Mobile Apps", "Database"}, "mcq", 0},
		{"Flask is a microframework.", []string{"True", "False"}, "tf", 0},
		{"Which command runs a Flask app?", []string{"flask run", "python manage.py", "npm start", "docker run"}, "mcq", 0},
	},
	"machine learning": {
		{"Machine Learning is a subset of?", []string{"AI", "Web development", "Databases", "Networking"}, "mcq", 0},
		{"Supervised learning requires labeled data.", []string{"True", "False"}, "tf", 0},
		{"Which library is used for ML in Python?", []string{"scikit-learn", "React", "Angular", "Flask"}, "mcq", 0},
	},
	"c++": {
		{"C++ is mainly used for?", []string{"System programming", "Web frontend", "Cloud management", "Database"}, "mcq", 0},
		{"C++ supports object-oriented programming.", []string{"True", "False"}, "tf", 0},
	},
	"kotlin": {
		{"Kotlin is mainly used for?", []string{"Android development", "iOS development", "Web backend", "Machine Learning"}, "mcq", 0},
		{"Kotlin is fully interoperable with Java.", []string{"True", "False"}, "tf", 0},
	},
	"html": {
		{"HTML stands for?", []string{"Hyper Text Markup Language", "High Text Machine Language", "Hyperlinks Text Markup Language", "Home Tool Markup Language"}, "mcq", 0},
		{"HTML is used to structure web content.", []string{"True", "False"}, "tf", 0},
	},
	"css": {
		{"CSS is used for?", []string{"Styling web pages", "Backend development", "Database management", "Networking"}, "mcq", 0},
		{"CSS stands for Cascading Style Sheets.", []string{"True", "False"}, "tf", 0},
	},
	"javascript": {
		{"JavaScript is mainly used for?", []string{"Frontend interactivity", "Database", "Operating System", "Networking"}, "mcq", 0},
		{"JavaScript is a compiled language.", []string{"True", "False"}, "tf", 1},
	},
}
