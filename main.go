package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/notify"
	"backend/internal/service"
	"backend/internal/store"
)

func main() {
	config.Load()

	var (
		orders    store.OrderStore
		customers store.CustomerStore
	)

	if config.AppEnv.DBMode == "memory" {
		log.Println("running with in-memory store (DB_MODE=memory)")
		mem := store.NewMemory()
		orders, customers = mem, mem
	} else {
		client, err := database.Connect(config.AppEnv.MongoURI)
		if err != nil {
			log.Fatal(err)
		}

		db := client.Database(config.AppEnv.DBName)
		log.Println("MongoDB connected to:", db.Name())

		if err := database.EnsureOrderIndexes(db); err != nil {
			log.Printf("⚠️ order index warning: %v", err)
		}
		if err := database.EnsureCustomerIndexes(db); err != nil {
			log.Printf("⚠️ customer index warning: %v", err)
		}

		mongoStore := store.NewMongo(db)
		orders, customers = mongoStore, mongoStore
	}

	var notifier notify.Notifier = notify.NewLog()
	if config.AppEnv.RedisAddr != "" {
		redisClient := notify.NewRedisClient(config.AppEnv.RedisAddr)
		defer redisClient.Close()
		notifier = notify.NewRedis(redisClient, config.AppEnv.NotifyChannel)
		log.Println("order events publishing to redis channel:", config.AppEnv.NotifyChannel)
	}

	aggregator := service.NewAggregator(orders)
	transitioner := service.NewTransitioner(orders)

	r := gin.Default()

	r.GET("/healthz", handlers.Health(orders))

	r.POST("/orders/client/:customerId", handlers.CreateOrders(orders, customers, notifier))
	r.GET("/orders/aggregated", handlers.GetAggregatedOrders(aggregator))
	r.GET("/orders/detail", handlers.GetOrderDetail(aggregator))
	r.PUT("/orders/:orderId/status", handlers.UpdateOrderStatus(transitioner, notifier))
	r.POST("/orders/:orderId/advance", handlers.AdvanceOrder(transitioner, notifier))
	r.GET("/orders/customer/:customerId", handlers.GetCustomerOrders(orders))

	r.GET("/customers/:customerId/profile", handlers.GetCustomerProfile(customers))
	r.PUT("/customers/:customerId/preferences", handlers.UpdateCustomerPreferences(customers))

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
