package handler

import (
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var startedAt = time.Now()

// StatusHandler reports process uptime, host load and store reachability.
func StatusHandler(c *gin.Context) {
	mongoStatus := "ok"
	if utils.MongoClient == nil {
		mongoStatus = "uninitialized"
	} else if err := utils.MongoClient.Ping(c.Request.Context(), readpref.Primary()); err != nil {
		mongoStatus = "unreachable"
	}

	utils.Success(c, gin.H{
		"uptime":         time.Since(startedAt).String(),
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
		"mongo":          mongoStatus,
	})
}
