package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	FeedAPIKey        string
	OrderFeedFile     string
	OrderSyncSchedule string
}
