package web420

var (
	// BuildRevision should be specified with -ldflags at build time
	BuildRevision = ""

	// ClientVersion is the commandline version string used to control
	// what the command line tool reports.
	ClientVersion = "2022-10-08"
)

const (
	// RestRoutePrefix is the prefix every resource route is mounted under.
	RestRoutePrefix = "api"

	// APIDocsRoute serves the Swagger UI page; the generated OpenAPI
	// document is at APIDocsRoute + ".json" and ".yaml".
	APIDocsRoute = "/api-docs"

	// LocalLoggingOverride is a special log path indicating that the
	// service should log to standard output.
	LocalLoggingOverride = "LOCAL"

	DefaultAPIPort         = 3000
	DefaultDatabaseName    = "web420DB"
	DefaultDatabaseURL     = "mongodb://localhost:27017"
	DefaultQueryTimeout    = 30
	DefaultConnectAttempts = 5
	DefaultShutdownSeconds = 10
)

// Environment variables consulted when building settings.
const (
	PortEnvVar     = "PORT"
	MongoURLEnvVar = "WEB420_MONGODB_URL"
	MongoDBEnvVar  = "WEB420_MONGODB_DB"
)
