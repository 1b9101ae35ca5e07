package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"onlinerf/internal/data"
	"onlinerf/internal/features"
	"onlinerf/internal/models"
	"onlinerf/internal/report"
	"onlinerf/pkg/utils"
)

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	regen := flag.Bool("regen", true, "Regenerar dataset sintético")
	n := flag.Int("n", 20000, "Número de registros sintéticos")
	informative := flag.Int("informative", 2, "Features correlacionadas com a classe")
	noise := flag.Int("noise", 3, "Features de ruído")
	classes := flag.Int("classes", 2, "Número de classes")
	out := flag.String("out", "data/stream.csv", "Caminho do CSV")
	trees := flag.Int("trees", 100, "Número de árvores")
	alpha := flag.Int("alpha", 2, "Mínimo de amostras antes de um split")
	beta := flag.Float64("beta", 0.05, "Ganho mínimo para split")
	candidates := flag.Int("candidates", 10, "Funções candidatas por folha")
	seed := flag.Int64("seed", 1, "Semente")
	mode := flag.String("mode", "batch", "Modo de ingestão: batch|stream")
	chunk := flag.Int("chunk", 500, "Itens por lote (e por ponto da curva)")
	holdout := flag.Float64("holdout", 0.2, "Fração final reservada para teste")
	curveCsv := flag.String("curve_out_csv", "data/learning_curve.csv", "CSV da curva")
	curveImg := flag.String("curve_out_img", "data/learning_curve.png", "PNG da curva")
	impImg := flag.String("importance_out_img", "data/importance.png", "PNG da importância")
	flag.Parse()

	if *regen {
		logger.Info("Gerando dataset sintético", zap.Int("n", *n), zap.String("out", *out))
		stream := data.GenerateStream(data.StreamSpec{
			N: *n, Classes: *classes, Informative: *informative, Noise: *noise, Spread: 0.45, Seed: *seed,
		})
		if err := data.WriteCSV(*out, stream); err != nil {
			logger.Fatal("Falha ao gerar dataset", zap.Error(err))
		}
	}

	items, err := features.LoadCSV(*out)
	if err != nil {
		logger.Fatal("Falha ao ler CSV", zap.Error(err))
	}
	split := int((1 - *holdout) * float64(len(items)))
	if split < 1 {
		logger.Fatal("Dataset pequeno demais", zap.Int("items", len(items)))
	}
	train, test := items[:split], items[split:]

	forest, err := models.NewForest(*trees, *alpha, *beta, *candidates,
		models.WithSeed(*seed), models.WithLogger(logger))
	if err != nil {
		logger.Fatal("Configuração inválida", zap.Error(err))
	}

	curve := report.NewCurve("prequential_acc", "test_acc")
	for start := 0; start < len(train); start += *chunk {
		end := start + *chunk
		if end > len(train) {
			end = len(train)
		}
		batch := train[start:end]
		preq := 0.0
		if start > 0 {
			preq = accuracy(forest, batch)
		}
		if *mode == "stream" {
			for _, in := range batch {
				if err := forest.TrainOne(in); err != nil {
					logger.Fatal("Falha ao treinar", zap.Error(err))
				}
			}
		} else if err := forest.Train(batch); err != nil {
			logger.Fatal("Falha ao treinar", zap.Error(err))
		}
		curve.Add(end, preq, accuracy(forest, test))
	}

	imp := forest.VariableImportance()
	logger.Info("Métricas holdout",
		zap.String("model", forest.Name()),
		zap.Float64("accuracy", accuracy(forest, test)),
		zap.Int("resets", forest.Resets()),
		zap.Float64("percent_done", forest.PercentDone()),
		zap.Any("importance", imp),
		zap.Any("split_importance", forest.SplitImportance()),
	)

	if err := report.WriteCurveCSV(*curveCsv, curve); err != nil {
		logger.Warn("Falha ao salvar CSV da curva", zap.Error(err))
	}
	if err := report.PlotCurve(*curveImg, "Curva de Aprendizagem", "Acurácia", curve); err != nil {
		logger.Warn("Falha ao salvar PNG da curva", zap.Error(err))
	} else {
		logger.Info("Curva de aprendizagem gerada", zap.String("png", *curveImg), zap.String("csv", *curveCsv))
	}
	if len(imp) > 0 {
		if err := report.PlotImportance(*impImg, "Importância das variáveis", imp); err != nil {
			logger.Warn("Falha ao salvar PNG da importância", zap.Error(err))
		}
	}
	fmt.Println("Modelo:", forest.Name())
}

func accuracy(f *models.Forest, items []*data.Input) float64 {
	if len(items) == 0 {
		return 0
	}
	c := 0
	for _, in := range items {
		if p, err := f.Predict(in); err == nil && p == in.Classification {
			c++
		}
	}
	return float64(c) / float64(len(items))
}
