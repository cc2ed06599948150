// Package vocab holds the curated vocabularies used for keyword extraction
// and ATS matching. The sets are process-wide, immutable after init, and
// intentionally static rather than learned.
package vocab

// Stopwords are closed-class tokens excluded from keyword extraction and
// skill matching.
var Stopwords = newSet(
	"and", "the", "to", "of", "a", "for", "in", "on", "with", "an", "by",
	"is", "be", "as", "or", "at", "from", "into", "will", "that",
)

// TechTerms are technology keywords recognized during extraction.
var TechTerms = newSet(
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php",
	"swift", "kotlin", "go", "rust", "scala", "r", "matlab", "perl",
	"vb.net", "objective-c",
	// Databases
	"sql", "nosql", "mysql", "postgresql", "mongodb", "redis", "cassandra",
	"dynamodb", "oracle", "sqlserver", "mariadb", "sqlite", "elasticsearch",
	"neo4j", "couchdb",
	// Cloud platforms
	"aws", "azure", "gcp", "heroku", "digitalocean", "linode", "cloudflare",
	"s3", "ec2", "lambda", "cloudformation", "cloudwatch", "rds", "sagemaker",
	// Frameworks and libraries
	"react", "angular", "vue", "django", "flask", "fastapi", "spring",
	"express", "node.js", "nodejs", ".net", "asp.net", "rails", "laravel",
	"next.js", "gatsby",
	// DevOps and tooling
	"docker", "kubernetes", "terraform", "ansible", "jenkins", "gitlab",
	"github", "ci/cd", "git", "linux", "unix", "bash", "powershell", "nginx",
	"apache",
	// Data and analytics
	"spark", "hadoop", "kafka", "airflow", "databricks", "snowflake",
	"redshift", "tableau", "powerbi", "looker", "qlik", "pandas", "numpy",
	"scipy",
	// AI/ML
	"ml", "ai", "tensorflow", "pytorch", "scikit-learn", "keras",
	"transformers", "nlp", "computer vision", "deep learning",
	"machine learning", "data science",
	// Methodologies
	"agile", "scrum", "kanban", "waterfall", "devops", "tdd", "bdd",
	"pair programming",
	// Business tools
	"salesforce", "sap", "workday", "servicenow", "jira", "confluence",
	"slack", "microsoft teams", "sharepoint", "excel", "powerpoint",
	// Other
	"api", "rest", "graphql", "microservices", "serverless", "etl",
	"data pipeline", "html", "css", "sass", "webpack", "babel", "json",
	"xml", "yaml", "oauth", "jwt", "saml", "sso", "encryption", "security",
	"compliance", "gdpr",
)

// ActionVerbs are ATS-critical verbs that signal impact in responsibilities
// and achievements.
var ActionVerbs = newSet(
	// Leadership and management
	"led", "managed", "directed", "supervised", "coordinated", "oversaw",
	"mentored", "coached", "trained", "guided", "delegated", "organized",
	"facilitated",
	// Achievement and results
	"achieved", "improved", "increased", "decreased", "reduced",
	"accelerated", "optimized", "streamlined", "enhanced", "transformed",
	"exceeded", "delivered",
	// Innovation and creation
	"developed", "created", "designed", "built", "engineered", "architected",
	"established", "launched", "pioneered", "innovated", "invented",
	"spearheaded",
	// Analysis and strategy
	"analyzed", "evaluated", "assessed", "identified", "researched",
	"investigated", "diagnosed", "forecasted", "strategized", "planned",
	"recommended",
	// Collaboration and communication
	"collaborated", "partnered", "communicated", "presented", "negotiated",
	"influenced", "persuaded", "consulted", "advised",
	// Implementation and execution
	"implemented", "executed", "deployed", "integrated", "automated",
	"configured", "maintained", "operated", "administered", "monitored",
	"resolved",
)

// SoftSkills are interpersonal and organizational skills recruiters screen
// for.
var SoftSkills = newSet(
	"leadership", "communication", "teamwork", "problem-solving",
	"critical thinking", "analytical", "strategic thinking", "creativity",
	"adaptability", "time management", "project management",
	"stakeholder management", "cross-functional", "collaboration",
	"presentation", "negotiation", "decision-making", "conflict resolution",
)

// Certifications are multi-word certification phrases matched as substrings
// against lowercased posting text.
var Certifications = []string{
	"aws certified", "azure certified", "gcp certified", "pmp", "cissp",
	"cism", "comptia", "ccna", "ccnp", "ccie", "cka", "ckad",
	"certified scrum master", "csm", "pmi", "itil", "six sigma", "cfa",
	"cpa", "mba", "ph.d", "phd",
}

func newSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
