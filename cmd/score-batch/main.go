package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/credipyme/risk-api/internal/database"
	"github.com/credipyme/risk-api/internal/logger"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/services"
	"github.com/credipyme/risk-api/pkg/config"
	"github.com/joho/godotenv"
)

// batchConfig controls one scoring sweep.
type batchConfig struct {
	batchSize            int
	maxConcurrent        int
	rescoreOlderThanDays int
	newOnly              bool
}

func main() {
	fmt.Println("CrediPyme batch risk scoring")
	fmt.Println("============================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()
	appLogger := logger.NewSimpleLogger()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	batch := parseBatchConfig()
	repos := repository.NewRepositories(db.DB)
	assessment := services.NewAssessmentService(repos, appLogger)

	// Companies never assessed always qualify; with newOnly off, those
	// whose last assessment predates the cutoff qualify too.
	criteria := repository.UnassessedCriteria{
		ExcludeAssessed: true,
		Limit:           batch.batchSize,
	}
	if !batch.newOnly {
		cutoff := time.Now().AddDate(0, 0, -batch.rescoreOlderThanDays)
		criteria.AssessedSince = &cutoff
	}

	companies, err := repos.Company.GetUnassessed(criteria)
	if err != nil {
		log.Fatalf("Failed to list companies: %v", err)
	}

	fmt.Printf("Companies to score: %d (concurrency %d)\n", len(companies), batch.maxConcurrent)
	start := time.Now()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failed    int
	)
	jobs := make(chan models.Company)

	for i := 0; i < batch.maxConcurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for company := range jobs {
				result, err := assessment.AssessCompany(company.ID.String())
				mu.Lock()
				if err != nil {
					failed++
					appLogger.Error("assessment failed", err, "ruc", company.RUC)
				} else {
					succeeded++
					appLogger.Info("assessed", "ruc", company.RUC, "score", result.OverallScore)
				}
				mu.Unlock()
			}
		}()
	}

	for _, company := range companies {
		jobs <- company
	}
	close(jobs)
	wg.Wait()

	fmt.Printf("\nBatch completed in %v\n", time.Since(start).Round(time.Second))
	fmt.Printf("   Succeeded: %d\n", succeeded)
	fmt.Printf("   Failed:    %d\n", failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// parseBatchConfig reads sweep settings from environment variables.
func parseBatchConfig() batchConfig {
	batch := batchConfig{
		batchSize:            100,
		maxConcurrent:        5,
		rescoreOlderThanDays: 30,
		newOnly:              false,
	}

	if val := os.Getenv("SCORE_BATCH_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			batch.batchSize = parsed
		}
	}
	if val := os.Getenv("SCORE_MAX_CONCURRENT"); val != "" {
		// At least one worker or the job feed blocks forever.
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 1 {
			batch.maxConcurrent = parsed
		}
	}
	if val := os.Getenv("SCORE_RESCORE_OLDER_THAN_DAYS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			batch.rescoreOlderThanDays = parsed
		}
	}
	if val := os.Getenv("SCORE_NEW_ONLY"); val != "" {
		batch.newOnly = val == "true"
	}

	return batch
}
