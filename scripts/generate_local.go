package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"alfredoptarigan/resume-forge/internal/app"
	"alfredoptarigan/resume-forge/internal/config"
	"alfredoptarigan/resume-forge/internal/models"
	"alfredoptarigan/resume-forge/internal/services"
)

// Runs the upload pipeline on a local résumé without starting the server:
//
//	go run ./scripts -file ./resume.pdf -variant portfolio_single -out site.json
func main() {
	filePath := flag.String("file", "", "Path to the résumé PDF")
	variantName := flag.String("variant", string(models.VariantATSMatch), "ats_match | portfolio_multi | portfolio_single")
	outPath := flag.String("out", "", "Write the artifact here instead of stdout")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("❌ -file is required")
	}

	variant, err := models.ParseTaskVariant(*variantName)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	info, err := os.Stat(*filePath)
	if err != nil {
		log.Fatalf("❌ Cannot read %s: %v", *filePath, err)
	}

	ctx := context.Background()

	pipeline, err := app.BuildPipeline(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	doc := &models.UploadedDocument{
		OriginalFileName: filepath.Base(*filePath),
		StoredFileName:   filepath.Base(*filePath),
		FilePath:         *filePath,
		Size:             info.Size(),
		ContentType:      "application/pdf",
		ReceivedAt:       time.Now(),
	}

	log.Printf("🚀 Running %s on %s", variant, *filePath)
	result, err := pipeline.Run(services.WithRequestID(ctx, "local"), doc, variant)
	if err != nil {
		log.Fatalf("❌ Pipeline failed (%s): %v", services.ErrorKind(err), err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result.Artifact.Data, "", "  "); err != nil {
		log.Fatalf("❌ %v", err)
	}
	pretty.WriteByte('\n')

	if *outPath == "" {
		os.Stdout.Write(pretty.Bytes())
		return
	}

	if err := os.WriteFile(*outPath, pretty.Bytes(), 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", *outPath, err)
	}
	log.Printf("✅ Wrote %s", *outPath)
}
