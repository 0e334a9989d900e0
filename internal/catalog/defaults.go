package catalog

import "resuscan/internal/types"

var defaultATSKeywords = map[string][]string{
	"software_engineer": {
		"python", "javascript", "react", "node.js", "sql", "git", "docker", "kubernetes",
		"aws", "azure", "machine learning", "api", "rest", "graphql", "microservices",
		"agile", "scrum", "tdd", "ci/cd", "jenkins", "jira", "confluence",
	},
	"data_scientist": {
		"python", "r", "sql", "pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
		"matplotlib", "seaborn", "plotly", "jupyter", "spark", "hadoop", "kafka",
		"machine learning", "deep learning", "nlp", "computer vision", "statistics",
	},
	"product_manager": {
		"agile", "scrum", "kanban", "jira", "confluence", "figma", "sketch", "product strategy",
		"user research", "a/b testing", "analytics", "sql", "excel", "powerpoint",
		"roadmapping", "stakeholder management", "market analysis", "competitive analysis",
	},
	"marketing": {
		"google analytics", "facebook ads", "google ads", "seo", "sem", "content marketing",
		"social media", "email marketing", "mailchimp", "hubspot", "salesforce", "crm",
		"conversion optimization", "a/b testing", "branding", "market research",
	},
}

var defaultRequiredSkills = map[string][]string{
	"software engineer": {
		"python", "javascript", "java", "react", "node.js", "sql", "git", "docker",
		"aws", "agile", "scrum", "api", "rest", "microservices",
	},
	"data scientist": {
		"python", "r", "sql", "pandas", "numpy", "scikit-learn", "tensorflow",
		"machine learning", "statistics", "data analysis", "jupyter",
	},
	"product manager": {
		"agile", "scrum", "jira", "confluence", "figma", "product strategy",
		"user research", "analytics", "sql", "excel", "roadmapping",
	},
	"marketing": {
		"google analytics", "facebook ads", "google ads", "seo", "sem",
		"content marketing", "social media", "email marketing", "crm",
	},
}

var defaultVocabulary = []string{
	"python", "javascript", "java", "c++", "react", "angular", "vue", "node.js",
	"sql", "mongodb", "postgresql", "mysql", "aws", "azure", "docker", "kubernetes",
	"git", "jenkins", "jira", "agile", "scrum", "machine learning", "ai", "nlp",
	"data analysis", "excel", "powerpoint", "photoshop", "figma", "sketch",
}

var defaultResources = []Resource{
	{
		Key: "python",
		Courses: []types.Course{
			{
				Name:        "Python for Everybody",
				Platform:    "Coursera (University of Michigan)",
				Description: "Free comprehensive Python course covering basics to advanced concepts",
				URL:         "https://www.coursera.org/specializations/python",
				Duration:    "4 months",
				Level:       "Beginner to Intermediate",
			},
			{
				Name:        "CS50's Introduction to Programming with Python",
				Platform:    "edX (Harvard)",
				Description: "Free Harvard course on Python programming fundamentals",
				URL:         "https://www.edx.org/course/cs50s-introduction-to-programming-with-python",
				Duration:    "9 weeks",
				Level:       "Beginner",
			},
			{
				Name:        "Python Tutorial for Beginners",
				Platform:    "YouTube (Programming with Mosh)",
				Description: "Free 6-hour comprehensive Python tutorial",
				URL:         "https://www.youtube.com/watch?v=_uQrJ0TkZlc",
				Duration:    "6 hours",
				Level:       "Beginner",
			},
		},
		Projects: []types.Project{
			{
				Name:            "Personal Finance Tracker",
				Description:     "Build a web app to track income, expenses, and savings with data visualization",
				SkillsDeveloped: []string{"Python", "Web Development", "Data Analysis", "SQL"},
				Difficulty:      "Beginner",
				Duration:        "2-3 weeks",
				TechStack:       []string{"Flask/Django", "SQLite", "Chart.js"},
			},
			{
				Name:            "Weather App with API",
				Description:     "Create a weather application that fetches data from weather APIs",
				SkillsDeveloped: []string{"Python", "API Integration", "HTTP Requests", "JSON"},
				Difficulty:      "Beginner",
				Duration:        "1-2 weeks",
				TechStack:       []string{"Requests", "Tkinter", "OpenWeather API"},
			},
			{
				Name:            "Data Analysis Dashboard",
				Description:     "Analyze a dataset and create interactive visualizations",
				SkillsDeveloped: []string{"Python", "Pandas", "Matplotlib", "Data Analysis"},
				Difficulty:      "Intermediate",
				Duration:        "2-3 weeks",
				TechStack:       []string{"Pandas", "Matplotlib", "Jupyter"},
			},
		},
	},
	{
		Key: "javascript",
		Courses: []types.Course{
			{
				Name:        "JavaScript Algorithms and Data Structures",
				Platform:    "freeCodeCamp",
				Description: "Free comprehensive JavaScript course with certifications",
				URL:         "https://www.freecodecamp.org/learn/javascript-algorithms-and-data-structures/",
				Duration:    "300 hours",
				Level:       "Beginner to Advanced",
			},
			{
				Name:        "The Complete JavaScript Course 2024",
				Platform:    "YouTube (Jonas Schmedtmann)",
				Description: "Free modern JavaScript course with real-world projects",
				URL:         "https://www.youtube.com/watch?v=W6NZfCO5SIk",
				Duration:    "12 hours",
				Level:       "Beginner to Intermediate",
			},
		},
		Projects: []types.Project{
			{
				Name:            "Todo List App",
				Description:     "Build a todo application with local storage and CRUD operations",
				SkillsDeveloped: []string{"JavaScript", "DOM Manipulation", "Local Storage", "CSS"},
				Difficulty:      "Beginner",
				Duration:        "1 week",
				TechStack:       []string{"HTML", "CSS", "JavaScript"},
			},
			{
				Name:            "Weather Dashboard",
				Description:     "Create a weather dashboard with multiple city support",
				SkillsDeveloped: []string{"JavaScript", "API Integration", "Async/Await", "Fetch API"},
				Difficulty:      "Beginner",
				Duration:        "2 weeks",
				TechStack:       []string{"HTML", "CSS", "JavaScript", "Weather API"},
			},
			{
				Name:            "E-commerce Product Page",
				Description:     "Build a product page with cart functionality and filters",
				SkillsDeveloped: []string{"JavaScript", "State Management", "Event Handling", "CSS Grid"},
				Difficulty:      "Intermediate",
				Duration:        "2-3 weeks",
				TechStack:       []string{"HTML", "CSS", "JavaScript"},
			},
		},
	},
	{
		Key: "react",
		Courses: []types.Course{
			{
				Name:        "React Tutorial for Beginners",
				Platform:    "YouTube (Programming with Mosh)",
				Description: "Free React.js tutorial with hands-on projects",
				URL:         "https://www.youtube.com/watch?v=Ke90Tje7VS0",
				Duration:    "3 hours",
				Level:       "Beginner",
			},
			{
				Name:        "React Full Course for Beginners",
				Platform:    "YouTube (freeCodeCamp)",
				Description: "Complete React course with 8 projects",
				URL:         "https://www.youtube.com/watch?v=bMknfKXIFA8",
				Duration:    "8 hours",
				Level:       "Beginner to Intermediate",
			},
		},
		Projects: []types.Project{
			{
				Name:            "Personal Portfolio",
				Description:     "Create a responsive portfolio website with React components",
				SkillsDeveloped: []string{"React", "Component Architecture", "Responsive Design", "CSS"},
				Difficulty:      "Beginner",
				Duration:        "2 weeks",
				TechStack:       []string{"React", "CSS", "React Router"},
			},
			{
				Name:            "Task Management App",
				Description:     "Build a Trello-like task management application",
				SkillsDeveloped: []string{"React", "State Management", "Drag & Drop", "Local Storage"},
				Difficulty:      "Intermediate",
				Duration:        "3-4 weeks",
				TechStack:       []string{"React", "react-beautiful-dnd", "CSS"},
			},
			{
				Name:            "E-commerce Store",
				Description:     "Create a full e-commerce site with product catalog and cart",
				SkillsDeveloped: []string{"React", "Context API", "Routing", "API Integration"},
				Difficulty:      "Intermediate",
				Duration:        "4-5 weeks",
				TechStack:       []string{"React", "React Router", "Context API", "CSS"},
			},
		},
	},
	{
		Key: "sql",
		Courses: []types.Course{
			{
				Name:        "SQL for Data Science",
				Platform:    "Coursera (UC Davis)",
				Description: "Free SQL course focused on data science applications",
				URL:         "https://www.coursera.org/learn/sql-for-data-science",
				Duration:    "4 weeks",
				Level:       "Beginner",
			},
			{
				Name:        "Learn SQL In 60 Minutes",
				Platform:    "YouTube (Web Dev Simplified)",
				Description: "Quick SQL tutorial covering all basics",
				URL:         "https://www.youtube.com/watch?v=p3qvj9hO_Bo",
				Duration:    "1 hour",
				Level:       "Beginner",
			},
		},
		Projects: []types.Project{
			{
				Name:            "Library Management System",
				Description:     "Design and implement a database for a library system",
				SkillsDeveloped: []string{"SQL", "Database Design", "ERD", "Normalization"},
				Difficulty:      "Beginner",
				Duration:        "2 weeks",
				TechStack:       []string{"MySQL/PostgreSQL", "ERD Tool"},
			},
			{
				Name:            "E-commerce Database",
				Description:     "Create a comprehensive database for an online store",
				SkillsDeveloped: []string{"SQL", "Complex Queries", "Joins", "Indexing"},
				Difficulty:      "Intermediate",
				Duration:        "3 weeks",
				TechStack:       []string{"MySQL/PostgreSQL", "Database Design"},
			},
		},
	},
	{
		Key: "machine learning",
		Courses: []types.Course{
			{
				Name:        "Machine Learning Course",
				Platform:    "Coursera (Stanford)",
				Description: "Free machine learning course by Andrew Ng",
				URL:         "https://www.coursera.org/learn/machine-learning",
				Duration:    "11 weeks",
				Level:       "Intermediate",
			},
			{
				Name:        "Machine Learning for Beginners",
				Platform:    "YouTube (freeCodeCamp)",
				Description: "Complete ML course with Python",
				URL:         "https://www.youtube.com/watch?v=KNAWp2S3w94",
				Duration:    "3 hours",
				Level:       "Beginner",
			},
		},
		Projects: []types.Project{
			{
				Name:            "House Price Predictor",
				Description:     "Build a ML model to predict house prices using regression",
				SkillsDeveloped: []string{"Python", "Scikit-learn", "Data Preprocessing", "Model Evaluation"},
				Difficulty:      "Intermediate",
				Duration:        "3-4 weeks",
				TechStack:       []string{"Python", "Scikit-learn", "Pandas", "Matplotlib"},
			},
			{
				Name:            "Sentiment Analysis Tool",
				Description:     "Create a tool that analyzes sentiment of text data",
				SkillsDeveloped: []string{"NLP", "Text Processing", "Classification", "Model Training"},
				Difficulty:      "Intermediate",
				Duration:        "4 weeks",
				TechStack:       []string{"Python", "NLTK", "Scikit-learn", "Flask"},
			},
		},
	},
	{
		Key: "aws",
		Courses: []types.Course{
			{
				Name:        "AWS Cloud Practitioner",
				Platform:    "AWS Training",
				Description: "Free AWS fundamentals course",
				URL:         "https://aws.amazon.com/training/",
				Duration:    "6 hours",
				Level:       "Beginner",
			},
			{
				Name:        "AWS Tutorial for Beginners",
				Platform:    "YouTube (Simplilearn)",
				Description: "Free AWS tutorial covering core services",
				URL:         "https://www.youtube.com/watch?v=ulprqHHW9ng",
				Duration:    "4 hours",
				Level:       "Beginner",
			},
		},
		Projects: []types.Project{
			{
				Name:            "Static Website Hosting",
				Description:     "Deploy a static website using AWS S3 and CloudFront",
				SkillsDeveloped: []string{"AWS S3", "CloudFront", "Static Hosting", "DNS"},
				Difficulty:      "Beginner",
				Duration:        "1 week",
				TechStack:       []string{"AWS S3", "CloudFront", "Route 53"},
			},
			{
				Name:            "Serverless API",
				Description:     "Build a serverless API using AWS Lambda and API Gateway",
				SkillsDeveloped: []string{"AWS Lambda", "API Gateway", "Serverless", "JSON"},
				Difficulty:      "Intermediate",
				Duration:        "2-3 weeks",
				TechStack:       []string{"AWS Lambda", "API Gateway", "DynamoDB"},
			},
		},
	},
}

const defaultFallbackKey = "python"

var defaultCatalog = build(defaultATSKeywords, defaultRequiredSkills, defaultVocabulary, defaultResources, defaultFallbackKey)
