package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/openarcade/arcade-server/api"
	"github.com/openarcade/arcade-server/node"
	"github.com/openarcade/arcade-server/store"
	"github.com/openarcade/arcade-server/util"
	"github.com/openarcade/arcade-server/ws"
)

func main() {
	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress,
		Password: config.RedisPassword,
		DB:       0,
	})

	// check redis connection status
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal(err)
	}

	st := store.NewRedisStore(rdb, config.NodeID)
	n := node.New(config.NodeID, st, nil)
	manager := ws.NewManager(config.NodeID, config, n)
	n.SetSender(manager)

	server := api.NewServer(config, n, st, manager)

	log.Fatal(server.Start())
}
