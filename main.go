package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wgkex/broker/config"
	"github.com/wgkex/broker/handlers"
	"github.com/wgkex/broker/mqttbroker"
	"github.com/wgkex/broker/state"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	configPath := os.Getenv("WGKEX_CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalf("❌ Failed to resolve hostname: %v", err)
	}

	// Initialize the three shared stores (C2-C4).
	metrics := state.NewMetricsStore()
	data := state.NewDataStore()
	brokers := state.NewBrokerStore()

	// Register the last-will before connecting (C7): if this process's
	// MQTT session dies abnormally, the broker publishes our retained
	// status as 0 on our behalf.
	statusTopic := mqttbroker.BrokerStatusTopic(hostname)
	mqttClient, err := mqttbroker.Connect(mqttbroker.Config{
		BrokerURL:        cfg.MQTT.BrokerURL,
		BrokerPort:       cfg.MQTT.BrokerPort,
		ClientID:         "wgkex-broker-" + hostname,
		Username:         cfg.MQTT.Username,
		Password:         cfg.MQTT.Password,
		KeepaliveSeconds: cfg.MQTT.KeepaliveSeconds,
		TLS:              cfg.MQTT.TLS,
		WillTopic:        statusTopic,
		WillPayload:      "0",
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to MQTT broker: %v", err)
	}
	defer mqttClient.Disconnect(250)
	log.Printf("📡 MQTT connected to %s:%d", cfg.MQTT.BrokerURL, cfg.MQTT.BrokerPort)

	domains := cfg.DomainSet()
	router := mqttbroker.NewRouter(domains, metrics, data, brokers, cfg.Verbose)
	if err := router.SubscribeAll(mqttClient); err != nil {
		log.Fatalf("❌ Failed to subscribe to MQTT topics: %v", err)
	}

	// Announce ourselves online now that subscriptions are live (C7).
	if err := mqttClient.PublishRetained(statusTopic, 1, "1"); err != nil {
		log.Printf("⚠️ Failed to publish broker online status: %v", err)
	}
	log.Printf("✅ Announced broker liveness on %s", statusTopic)

	handlers.Init(&handlers.Deps{
		Domains: domains,
		Metrics: metrics,
		Data:    data,
		Brokers: brokers,
		MQTT:    mqttClient,
	})

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(handlers.RequestID())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsCfg))

	r.GET("/", handlers.Index)
	r.GET("/status", handlers.Status)

	api := r.Group("/api")
	{
		api.POST("/v1/wg/key/exchange", handlers.KeyExchangeV1)
		api.POST("/v2/wg/key/exchange", handlers.KeyExchangeV2)
	}

	addr := fmt.Sprintf("%s:%d", cfg.BrokerListen.Host, cfg.BrokerListen.Port)
	log.Printf("🚀 Broker listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
