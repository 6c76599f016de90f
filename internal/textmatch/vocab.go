package textmatch

// DefaultSkills is the skill vocabulary scanned against job descriptions.
// Order is significant: it fixes the flag vector and output column order.
var DefaultSkills = []Skill{
	// Core programming
	{Key: "python", Aliases: []string{"python"}},
	{Key: "r", Aliases: []string{" r ", " r,", " r\n", " r/"}},
	{Key: "java", Aliases: []string{"java"}},
	{Key: "scala", Aliases: []string{"scala"}},
	{Key: "c++", Aliases: []string{"c++"}},

	// SQL & databases
	{Key: "sql & database", Aliases: []string{" sql ", "mysql", "postgres", "postgresql", "oracle", "sql server", "mssql", "sqlite"}},
	{Key: "mongodb", Aliases: []string{"mongodb", "mongo"}},
	{Key: "elasticsearch", Aliases: []string{"elasticsearch", "elastic search"}},

	// Data libraries
	{Key: "pandas", Aliases: []string{"pandas"}},
	{Key: "numpy", Aliases: []string{"numpy"}},
	{Key: "scipy", Aliases: []string{"scipy"}},
	{Key: "sklearn", Aliases: []string{"scikit-learn", "sklearn"}},

	// Machine learning
	{Key: "machine_learning", Aliases: []string{"machine learning", "supervised", "unsupervised", "random forest", "xgboost", "lightgbm", "catboost"}},

	// Deep learning
	{Key: "deep_learning", Aliases: []string{"deep learning", "neural network", "cnn", "rnn", "lstm", "transformer"}},

	// GenAI / LLM
	{Key: "llm", Aliases: []string{"llm", "large language model"}},
	{Key: "rag", Aliases: []string{"rag", "retrieval augmented generation"}},
	{Key: "langchain", Aliases: []string{"langchain"}},
	{Key: "openai", Aliases: []string{"openai"}},
	{Key: "huggingface", Aliases: []string{"huggingface"}},
	{Key: "prompt_engineering", Aliases: []string{"prompt engineering"}},
	{Key: "vector_db", Aliases: []string{"vector database", "pinecone", "faiss", "weaviate", "milvus"}},

	// Visualization / BI
	{Key: "excel", Aliases: []string{"excel", "vlookup", "pivot table", "power query"}},
	{Key: "powerbi", Aliases: []string{"power bi", "powerbi", "dax"}},
	{Key: "tableau", Aliases: []string{"tableau"}},
	{Key: "matplotlib", Aliases: []string{"matplotlib"}},
	{Key: "seaborn", Aliases: []string{"seaborn"}},
	{Key: "plotly", Aliases: []string{"plotly"}},

	// Big data
	{Key: "spark", Aliases: []string{"spark", "pyspark"}},
	{Key: "hadoop", Aliases: []string{"hadoop"}},
	{Key: "kafka", Aliases: []string{"kafka"}},

	// Cloud
	{Key: "aws", Aliases: []string{"aws", "amazon web services", "s3", "redshift", "athena", "glue", "lambda"}},
	{Key: "gcp", Aliases: []string{"gcp", "google cloud", "bigquery", "cloud storage"}},
	{Key: "azure", Aliases: []string{"azure", "synapse", "databricks"}},

	// Data engineering
	{Key: "etl", Aliases: []string{"etl", "elt", "data pipeline"}},
	{Key: "airflow", Aliases: []string{"airflow"}},

	// MLOps / deployment
	{Key: "docker", Aliases: []string{"docker"}},
	{Key: "kubernetes", Aliases: []string{"kubernetes", "k8s"}},
	{Key: "mlflow", Aliases: []string{"mlflow"}},
	{Key: "fastapi", Aliases: []string{"fastapi"}},
	{Key: "flask", Aliases: []string{"flask"}},
	{Key: "streamlit", Aliases: []string{"streamlit"}},

	// Statistics
	{Key: "statistics", Aliases: []string{"statistics", "statistical", "hypothesis testing", "regression", "anova", "probability"}},

	// Version control
	{Key: "git", Aliases: []string{"git", "github", "gitlab"}},

	// APIs
	{Key: "api", Aliases: []string{"api", "rest api"}},

	// Linux
	{Key: "linux", Aliases: []string{"linux", "unix"}},
}

// DefaultKeyVariants is the query-token synonym table used by the keyword
// matcher. Tokens not listed here match only themselves.
var DefaultKeyVariants = map[string][]string{
	"data":      {"data"},
	"scientist": {"scientist", "science", "scien", "scient"},
	"engineer":  {"engineer", "engineering", "eng"},
	"analyst":   {"analyst", "analytics", "analysis"},
	"developer": {"developer", "development", "dev"},
}
