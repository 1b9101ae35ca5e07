package main

import (
	"flag"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"onlinerf/internal/api"
	"onlinerf/internal/config"
	"onlinerf/internal/features"
	"onlinerf/internal/models"
	"onlinerf/pkg/utils"
)

func main() {
	configPath := flag.String("config", os.Getenv("ORF_CONFIG"), "Arquivo YAML de configuração")
	warm := flag.String("data", "", "CSV para treino inicial (opcional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Logger().Fatal("Configuração inválida", zap.Error(err))
	}
	logger := utils.New(cfg.Log.File, cfg.Log.Level)
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	metrics := api.NewMetrics(reg)

	opts := []models.Option{
		models.WithLogger(logger),
		models.WithResetHook(metrics.ObserveReset),
		models.WithOOBWindow(cfg.Forest.OOBWindow),
		models.WithWorkers(cfg.Forest.Workers),
	}
	if cfg.Forest.Seed != nil {
		opts = append(opts, models.WithSeed(*cfg.Forest.Seed))
	}
	forest, err := models.NewForest(cfg.Forest.Trees, cfg.Forest.Alpha, cfg.Forest.Beta, cfg.Forest.Candidates, opts...)
	if err != nil {
		logger.Fatal("Falha ao criar floresta", zap.Error(err))
	}

	if *warm != "" {
		batch, err := features.LoadCSV(*warm)
		if err != nil {
			logger.Fatal("Falha ao ler CSV", zap.Error(err))
		}
		if err := forest.Train(batch); err != nil {
			logger.Fatal("Falha no treino inicial", zap.Error(err))
		}
		metrics.Trained.Add(float64(len(batch)))
		logger.Info("Treino inicial concluído", zap.Int("items", len(batch)), zap.Int("resets", forest.Resets()))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := api.NewServer(forest, logger, cfg.Server.APIKey, metrics, reg)
	logger.Info("Servidor iniciado", zap.String("port", cfg.Server.Port), zap.Int("trees", forest.Size()))
	if err := srv.Router().Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Servidor encerrado", zap.Error(err))
	}
}
