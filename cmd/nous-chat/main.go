package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ntoledo319/nous-core/internal/analytics"
	"github.com/ntoledo319/nous-core/internal/config"
	"github.com/ntoledo319/nous-core/internal/content"
	"github.com/ntoledo319/nous-core/internal/genai"
	"github.com/ntoledo319/nous-core/internal/nlu"
	"github.com/ntoledo319/nous-core/internal/orchestrator"
	"github.com/ntoledo319/nous-core/internal/personal"
)

// #region main
func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfgPath := envOr("NOUS_CONFIG", "nous.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	contents, err := content.NewStore(cfg.Catalog.Dir, cfg.Catalog.DefaultLocale)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	store, err := openPersonalStore(cfg)
	if err != nil {
		log.Fatalf("open personalization store: %v", err)
	}
	defer store.Close()

	sink, err := analytics.NewFileSink(cfg.Analytics.Path)
	if err != nil {
		log.Fatalf("open analytics sink: %v", err)
	}
	defer sink.Close()

	var completer genai.ChatCompleter
	var detector nlu.EmotionDetector
	if cfg.Model.APIKey != "" {
		client := genai.NewOpenAIClient(cfg.Model.APIKey, cfg.Model.Name)
		completer = client
		detector = genai.NewModelEmotionDetector(client)
	} else {
		log.Println("no API key configured, running in content-render mode")
	}

	responder := orchestrator.NewResponder(
		nlu.NewClassifier(detector),
		contents,
		store,
		sink,
		completer,
		orchestrator.GenerationParams{
			MaxTokens:   cfg.Model.MaxTokens,
			Temperature: cfg.Model.Temperature,
		},
	)

	userID := envOr("NOUS_USER", "local")
	timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second

	fmt.Println("NOUS chat ready.")
	fmt.Printf("  catalog: %s | store: %s | user: %s\n", cfg.Catalog.Dir, cfg.Store.Driver, userID)
	fmt.Println("Type a message (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		env := responder.GetTherapeuticResponse(ctx, input, userID, nil)
		cancel()

		fmt.Printf("\n%s\n\n", env.Text)
		if len(env.ImmediateActions) > 0 {
			fmt.Println("Try now:")
			for _, a := range env.ImmediateActions {
				fmt.Printf("  - %s\n", a)
			}
		}
		if len(env.QuickReplies) > 0 {
			fmt.Printf("Quick replies: %s\n", strings.Join(env.QuickReplies, " | "))
		}
		fmt.Printf("[%s] mode=%s approach=%s tone=%s type=%s content=%s\n",
			env.TurnID, env.DialogueMode, env.Approach, env.Tone, env.Type, env.ContentUsed)
	}
}

// #endregion main

// #region helpers

func openPersonalStore(cfg config.Config) (personal.Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return personal.NewRedisStore(ctx, cfg.Store.RedisURL)
	default:
		return personal.NewSQLiteStore(cfg.Store.Path)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
