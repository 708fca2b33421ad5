package skills

// DefaultKeywords is the built-in single-word technology and domain vocabulary.
var DefaultKeywords = []string{
	"python", "javascript", "typescript", "react", "node", "django", "flask",
	"fastapi", "streamlit", "pandas", "numpy", "scikit", "ml", "nlp",
	"spacy", "nltk", "openai", "gpt", "gemini", "llm", "prompt",
	"api", "rest", "graphql", "aws", "gcp", "azure",
	"sql", "postgres", "mysql", "sqlite", "mongodb",
	"docker", "kubernetes", "ci", "cd", "git",
	"golang", "rust", "java",
}

// DefaultPhrases are multi-word terms detected by exact occurrence in the joined token stream.
var DefaultPhrases = []string{
	"machine learning",
	"data science",
	"natural language",
	"deep learning",
	"large language",
	"generative ai",
	"computer vision",
}
