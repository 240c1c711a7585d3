package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/encounter-forge/internal/entities"
)

const (
	encounterPattern = "encounter:*"
	historyKey       = "encounters:history"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted encounters...")

	iter := client.Scan(ctx, 0, encounterPattern, 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var enc entities.Encounter
		if err := json.Unmarshal([]byte(data), &enc); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		// A saved encounter always carries its own ID and at least one creature
		if enc.ID != strings.TrimPrefix(key, "encounter:") || len(enc.Creatures) == 0 {
			fmt.Printf("✗ Inconsistent encounter in %s (id %q, %d creatures)\n", key, enc.ID, len(enc.Creatures))
			corruptedKeys = append(corruptedKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	ids, err := client.ZRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		log.Fatal("Error reading history index:", err)
	}
	var staleIDs []string
	for _, id := range ids {
		exists, err := client.Exists(ctx, "encounter:"+id).Result()
		if err != nil {
			fmt.Printf("Error checking %s: %v\n", id, err)
			continue
		}
		if exists == 0 {
			staleIDs = append(staleIDs, id)
		}
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted entries and %d stale history entries\n",
		checkedCount, len(corruptedKeys), len(staleIDs))

	if len(corruptedKeys) == 0 && len(staleIDs) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		pipe := client.TxPipeline()
		pipe.Del(ctx, key)
		pipe.ZRem(ctx, historyKey, strings.TrimPrefix(key, "encounter:"))
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	if len(staleIDs) > 0 {
		members := make([]any, len(staleIDs))
		for i, id := range staleIDs {
			members[i] = id
		}
		if err := client.ZRem(ctx, historyKey, members...).Err(); err != nil {
			fmt.Printf("Failed to prune history index: %v\n", err)
		} else {
			fmt.Printf("Pruned %d stale history entries\n", len(staleIDs))
		}
	}
	fmt.Println("\nCleanup complete!")
}
