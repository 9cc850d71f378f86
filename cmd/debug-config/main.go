package main

import (
	"fmt"
	"os"

	"github.com/charging-platform/oicp-emp-gateway/internal/config"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// 配置调试工具
// 用于验证配置加载结果，包括环境变量覆盖和认证白名单的格式
func main() {
	fmt.Println("=== OICP EMP Gateway Configuration Test ===")

	// 显示环境变量
	fmt.Println("\n--- Environment Variables ---")
	envVars := []string{
		config.EnvPrefix + "_APP_PROFILE",
		config.EnvPrefix + "_SERVER_PORT",
		config.EnvPrefix + "_HUBJECT_BASE_URL",
		config.EnvPrefix + "_REDIS_ADDR",
		config.EnvPrefix + "_KAFKA_BROKERS",
		config.EnvPrefix + "_LOG_LEVEL",
		config.EnvPrefix + "_EMP_PROVIDER_ID",
	}

	for _, env := range envVars {
		value := os.Getenv(env)
		if value != "" {
			fmt.Printf("%s = %s\n", env, value)
		} else {
			fmt.Printf("%s = (not set)\n", env)
		}
	}

	// 加载配置
	fmt.Println("\n--- Loading Configuration ---")
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// 显示最终配置
	fmt.Println("\n--- Final Configuration ---")
	fmt.Printf("App Name: %s\n", cfg.App.Name)
	fmt.Printf("App Version: %s\n", cfg.App.Version)
	fmt.Printf("App Profile: %s\n", cfg.App.Profile)
	fmt.Printf("Pod ID: %s\n", cfg.PodID)
	fmt.Printf("Server Address: %s%s\n", cfg.GetServerAddr(), cfg.Server.BasePath)
	fmt.Printf("Hubject Base URL: %s (timeout %s, page size %d)\n", cfg.Hubject.BaseURL, cfg.Hubject.RequestTimeout, cfg.Hubject.PageSize)
	fmt.Printf("Redis: enabled=%v addr=%s session ttl=%s\n", cfg.Redis.Enabled(), cfg.Redis.Addr, cfg.Redis.SessionTTL)
	fmt.Printf("Kafka: enabled=%v brokers=%v events=%s commands=%s\n", cfg.Kafka.Enabled(), cfg.Kafka.Brokers, cfg.Kafka.EventTopic, cfg.Kafka.CommandTopic)
	fmt.Printf("Log Level: %s\n", cfg.Log.Level)
	fmt.Printf("Metrics Address: %s\n", cfg.GetMetricsAddr())
	fmt.Printf("Provider ID: %s\n", cfg.EMP.ProviderID)

	// 认证白名单检查
	fmt.Println("\n--- Identifications ---")
	check := func(kind string, keys []string) {
		for _, key := range keys {
			if _, err := oicp.ParseIdentificationKey(key); err != nil {
				fmt.Printf("%s %s: INVALID (%v)\n", kind, key, err)
			} else {
				fmt.Printf("%s %s: ok\n", kind, key)
			}
		}
	}
	check("authorized", cfg.EMP.AuthorizedIdentifications)
	check("stop", cfg.EMP.StopIdentifications)

	// 环境检查
	fmt.Println("\n--- Environment Check ---")
	fmt.Printf("Is Development: %v\n", cfg.IsDevelopment())
	fmt.Printf("Is Test: %v\n", cfg.IsTest())
	fmt.Printf("Is Production: %v\n", cfg.IsProduction())

	fmt.Println("\n=== Configuration Test Complete ===")
}
