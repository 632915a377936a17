package config

import "time"

type Config struct {
	Server      ServerConfig
	Shopify     ShopifyConfig
	Mysql       MysqlConfig
	Session     SessionConfig
	TelegramBot TelegramBotConfig
}

type ServerConfig struct {
	Port string
}

type ShopifyConfig struct {
	ApiKey      string
	ApiSecret   string
	APIVer      string
	Scopes      string
	RedirectUri string
	Timeout     time.Duration
}

type MysqlConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}

const (
	defaultAPIVersion = "2024-10"
	defaultScopes     = "read_products,write_products,read_inventory,write_inventory,read_locations,write_locations"
)

func Load() (Config, error) {
	apiKey, err := requriedString("SHOPIFY_API_KEY")
	if err != nil {
		return Config{}, err
	}
	apiSecret, err := requriedString("SHOPIFY_API_SECRET")
	if err != nil {
		return Config{}, err
	}
	redirectUri, err := requriedString("SHOPIFY_REDIRECT_URI")
	if err != nil {
		return Config{}, err
	}
	sessionSecret, err := requriedString("SESSION_SECRET")
	if err != nil {
		return Config{}, err
	}
	mysqlHost, err := requriedString("MYSQL_HOST")
	if err != nil {
		return Config{}, err
	}
	mysqlUser, err := requriedString("MYSQL_USERNAME")
	if err != nil {
		return Config{}, err
	}
	mysqlDatabase, err := requriedString("MYSQL_DATABASE")
	if err != nil {
		return Config{}, err
	}
	mysqlPort, err := intWithDefault("MYSQL_PORT", 3306)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: ServerConfig{
			Port: stringWithDefault("PORT", "8080"),
		},
		Shopify: ShopifyConfig{
			ApiKey:      apiKey,
			ApiSecret:   apiSecret,
			APIVer:      stringWithDefault("SHOPIFY_API_VERSION", defaultAPIVersion),
			Scopes:      stringWithDefault("SHOPIFY_SCOPES", defaultScopes),
			RedirectUri: redirectUri,
			Timeout:     30 * time.Second,
		},
		Mysql: MysqlConfig{
			Host:     mysqlHost,
			Port:     mysqlPort,
			Username: mysqlUser,
			Password: stringWithDefault("MYSQL_PASSWORD", ""),
			Database: mysqlDatabase,
		},
		Session: SessionConfig{
			Secret: sessionSecret,
			TTL:    24 * time.Hour,
		},
		TelegramBot: TelegramBotConfig{
			ChatId: stringWithDefault("TELEGRAM_CHAT_ID", ""),
			Token:  stringWithDefault("TELEGRAM_BOT_TOKEN", ""),
		},
	}, nil
}
