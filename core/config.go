package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the app configuration. It is loaded once at startup.
var Conf *Config

type (
	ServerConfig struct {
		Host                      string
		Addr                      string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Name          string
		DisableTLS    bool
	}

	AssistConfig struct {
		GrokAPIKey    string
		GrokModel     string
		GrokBaseURL   string
		QuestionsPath string
	}

	Config struct {
		Env              string
		Debug            bool
		TestMode         bool
		Build            string
		AppName          string
		SecretKey        string
		FrontendDir      string
		FrontendBaseURL  string
		MediaRoot        string
		WorkDir          string
		DefaultFromName  string
		DefaultFromAddr  string
		SendgridApiKey   string
		RollbarToken     string
		Server           ServerConfig
		Database         DatabaseConfig
		Assist           AssistConfig
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

func init() {
	Conf = loadConfig()
}

func loadConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	wd := Getwd()

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "ClassReconnect")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendDir", filepath.Join(wd, "..", "frontend", "public"))
	v.SetDefault("frontendBaseURL", "http://localhost:8000")
	v.SetDefault("mediaRoot", filepath.Join(wd, "uploads"))
	v.SetDefault("defaultFromName", "ClassReconnect")
	v.SetDefault("defaultFromAddr", "noreply@localhost")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "classreconnect")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.name", "classreconnect")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("assist.grokApiKey", "")
	v.SetDefault("assist.grokModel", "grok-2")
	v.SetDefault("assist.grokBaseURL", "https://api.x.ai")
	v.SetDefault("assist.questionsPath", filepath.Join(wd, "..", "chat-gpt", "predefined_questions", "questions.txt"))

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("env", env)
	switch env {
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		log.Fatal(fmt.Errorf("config.Unmarshal: %v", err))
	}
	conf.WorkDir = wd
	return conf
}
