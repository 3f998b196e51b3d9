package util

const (
	AIProviderGemini = "gemini"
	AIProviderOpenAI = "openai"
)

const (
	DBDriverMySQL    = "mysql"
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)
