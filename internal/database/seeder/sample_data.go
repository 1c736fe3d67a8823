package seeder

type IndustrySample struct {
	Name   string
	Skills []string
	Trends []TrendSample
	Jobs   []JobSample
}

type TrendSample struct {
	Name           string
	Description    string
	RelevanceScore float64
	Source         string
}

type JobSample struct {
	Title    string
	Salaries []SalarySample
	Demand   DemandSample
	Path     PathSample
}

type SalarySample struct {
	Level                        string
	MinSalary, MaxSalary, Median int
}

type DemandSample struct {
	DemandScore float64
	GrowthRate  float64
	NumOpenings int
	TimePeriod  string
}

type PathSample struct {
	StartingRole      string
	Steps             []StepSample
	Transitions       map[string]int
	RequiredSkills    []string
	RecommendedSkills []string
}

type StepSample struct {
	Role        string
	Description string
	Skills      []string
	Years       float64
}

func SampleIndustries() []IndustrySample {
	return []IndustrySample{
		{
			Name: "Technology",
			Skills: []string{
				"Python", "JavaScript", "React", "AWS", "Docker", "Kubernetes", "Machine Learning",
				"Data Science", "SQL", "NoSQL", "REST API", "GraphQL", "Git", "CI/CD", "Agile",
				"Cloud Computing", "DevOps", "Microservices", "Node.js", "TypeScript",
			},
			Trends: []TrendSample{
				{"Artificial Intelligence", "Growing adoption of AI across all software development", 0.95, "Gartner 2023"},
				{"Cloud-Native Development", "Shift towards cloud-native architectures and containerization", 0.9, "Stack Overflow Survey 2023"},
				{"Low-Code/No-Code", "Increasing use of visual development platforms to accelerate app creation", 0.8, "Forrester Research"},
			},
			Jobs: []JobSample{
				{
					Title: "Software Engineer",
					Salaries: []SalarySample{
						{"entry", 70000, 100000, 85000},
						{"mid", 90000, 140000, 115000},
						{"senior", 120000, 200000, 160000},
					},
					Demand: DemandSample{0.85, 22.1, 150000, "2023"},
					Path: PathSample{
						StartingRole: "Junior Software Engineer",
						Steps: []StepSample{
							{"Software Engineer", "Mid-level engineer responsible for implementing features", []string{"JavaScript", "React", "Node.js", "SQL", "Git"}, 3},
							{"Senior Software Engineer", "Leading development efforts and mentoring junior engineers", []string{"System Design", "Architecture", "Team Leadership", "Code Review"}, 5},
							{"Engineering Manager", "Managing teams of engineers and coordinating project delivery", []string{"Project Management", "People Management", "Technical Leadership"}, 8},
						},
						Transitions:       map[string]int{"Junior to Mid": 24, "Mid to Senior": 36, "Senior to Manager": 48},
						RequiredSkills:    []string{"JavaScript", "React", "Node.js", "SQL", "Git", "System Design", "Architecture"},
						RecommendedSkills: []string{"TypeScript", "AWS", "CI/CD", "Docker", "Kubernetes"},
					},
				},
				{
					Title: "Data Scientist",
					Salaries: []SalarySample{
						{"entry", 80000, 110000, 95000},
						{"mid", 100000, 150000, 125000},
						{"senior", 130000, 210000, 175000},
					},
					Demand: DemandSample{0.9, 36.0, 85000, "2023"},
					Path: PathSample{
						StartingRole: "Junior Data Scientist",
						Steps: []StepSample{
							{"Data Scientist", "Analyzing data and building machine learning models", []string{"Python", "SQL", "Machine Learning", "Statistics", "Data Visualization"}, 3},
							{"Senior Data Scientist", "Leading data science initiatives and mentoring junior data scientists", []string{"Advanced ML", "Deep Learning", "Data Strategy", "Team Leadership"}, 5},
							{"Data Science Manager", "Managing teams of data scientists and aligning data strategies with business goals", []string{"Project Management", "People Management", "Business Strategy"}, 8},
						},
						Transitions:       map[string]int{"Junior to Mid": 24, "Mid to Senior": 36, "Senior to Manager": 48},
						RequiredSkills:    []string{"Python", "SQL", "Machine Learning", "Statistics", "Data Visualization"},
						RecommendedSkills: []string{"Deep Learning", "Big Data", "Cloud Computing", "NLP", "Computer Vision"},
					},
				},
			},
		},
		{
			Name: "Finance",
			Skills: []string{
				"Financial Analysis", "Accounting", "Investment Banking", "Financial Modeling", "Valuation",
				"Risk Management", "Bloomberg Terminal", "Excel", "VBA", "SQL", "Python", "R",
				"Financial Reporting", "Budgeting", "Forecasting", "CFA", "Asset Management",
				"Portfolio Management", "Fixed Income", "Derivatives",
			},
			Trends: []TrendSample{
				{"FinTech Integration", "Traditional financial institutions incorporating technology to improve services", 0.92, "Deloitte Financial Services Trends 2023"},
				{"ESG Investing", "Growing focus on environmental, social, and governance factors in investment decisions", 0.88, "BlackRock Annual Report"},
				{"AI in Finance", "Implementation of AI for risk assessment, fraud detection, and algorithmic trading", 0.85, "Financial Times Tech Report"},
			},
			Jobs: []JobSample{
				{
					Title: "Financial Analyst",
					Salaries: []SalarySample{
						{"entry", 65000, 85000, 75000},
						{"mid", 80000, 120000, 100000},
						{"senior", 110000, 170000, 135000},
					},
					Demand: DemandSample{0.8, 6.2, 45000, "2023"},
					Path: PathSample{
						StartingRole: "Junior Financial Analyst",
						Steps: []StepSample{
							{"Financial Analyst", "Analyzing financial data and preparing reports for management", []string{"Financial Analysis", "Excel", "Financial Modeling", "Accounting"}, 3},
							{"Senior Financial Analyst", "Leading financial analyses and providing strategic recommendations", []string{"Advanced Financial Modeling", "Valuation", "Forecasting", "Team Leadership"}, 5},
							{"Finance Manager", "Overseeing financial operations and managing a team of analysts", []string{"Budgeting", "Risk Management", "People Management", "Financial Strategy"}, 8},
						},
						Transitions:       map[string]int{"Junior to Mid": 24, "Mid to Senior": 36, "Senior to Manager": 48},
						RequiredSkills:    []string{"Financial Analysis", "Excel", "Financial Modeling", "Accounting", "Valuation"},
						RecommendedSkills: []string{"Python", "SQL", "VBA", "CFA", "Risk Management"},
					},
				},
			},
		},
		{
			Name: "Healthcare",
			Skills: []string{
				"Electronic Health Records (EHR)", "Medical Coding", "Clinical Documentation", "HIPAA Compliance",
				"Patient Care", "Healthcare Administration", "Medical Terminology", "ICD-10", "CPT Coding",
				"Healthcare Informatics", "Clinical Research", "Quality Improvement", "Regulatory Compliance",
				"Epic", "Cerner", "MEDITECH", "Case Management", "Telehealth", "Population Health Management",
			},
			Trends: []TrendSample{
				{"Telehealth Expansion", "Increasing adoption of remote healthcare delivery models", 0.9, "American Medical Association"},
				{"AI in Diagnostics", "Machine learning tools to assist in medical diagnostics and treatment planning", 0.85, "New England Journal of Medicine"},
				{"Value-Based Care", "Shift from fee-for-service to value-based healthcare delivery models", 0.82, "Healthcare Financial Management Association"},
			},
			Jobs: []JobSample{
				{
					Title: "Healthcare Administrator",
					Salaries: []SalarySample{
						{"entry", 60000, 80000, 70000},
						{"mid", 75000, 110000, 95000},
						{"senior", 100000, 160000, 130000},
					},
					Demand: DemandSample{0.75, 28.3, 38000, "2023"},
					Path: PathSample{
						StartingRole: "Administrative Assistant",
						Steps: []StepSample{
							{"Healthcare Administrator", "Managing day-to-day operations of healthcare facilities", []string{"Healthcare Administration", "HIPAA Compliance", "EHR Systems", "Staff Management"}, 3},
							{"Healthcare Manager", "Overseeing departments within healthcare organizations", []string{"Budgeting", "Healthcare Regulations", "Quality Improvement", "Leadership"}, 6},
							{"Healthcare Director", "Strategic leadership for healthcare facilities or departments", []string{"Strategic Planning", "Financial Management", "Healthcare Policy", "Executive Leadership"}, 10},
						},
						Transitions:       map[string]int{"Assistant to Admin": 24, "Admin to Manager": 36, "Manager to Director": 48},
						RequiredSkills:    []string{"Healthcare Administration", "HIPAA Compliance", "EHR Systems", "Staff Management"},
						RecommendedSkills: []string{"Healthcare Informatics", "Quality Improvement", "Healthcare Policy", "Telehealth"},
					},
				},
			},
		},
	}
}
