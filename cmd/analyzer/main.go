package main

import (
	"flag"
	"fmt"

	"onlinerf/internal/data"
	"onlinerf/internal/features"
	"onlinerf/internal/models"
	"onlinerf/internal/report"
)

func main() {
	n := flag.Int("n", 6000, "Tamanho do fluxo")
	driftAt := flag.Int("drift_at", 3000, "Item em que o conceito muda (0 desliga)")
	window := flag.Int("window", 200, "Itens por ponto da curva")
	trees := flag.Int("trees", 30, "Número de árvores")
	alpha := flag.Int("alpha", 5, "Mínimo de amostras antes de um split")
	beta := flag.Float64("beta", 0.05, "Ganho mínimo para split")
	candidates := flag.Int("candidates", 10, "Funções candidatas por folha")
	seed := flag.Int64("seed", 7, "Semente")
	outImg := flag.String("out_img", "data/drift.png", "PNG de saída")
	outCsv := flag.String("out_csv", "data/drift.csv", "CSV de saída")
	flag.Parse()

	stream := data.GenerateStream(data.StreamSpec{
		N: *n, Classes: 2, Informative: 1, Noise: 2, Spread: 0.3, DriftAt: *driftAt, Seed: *seed,
	})
	if *driftAt > 0 && *driftAt < len(stream) {
		features.Normalize(stream)
		before, after := byClass(stream[:*driftAt], 0), byClass(stream[*driftAt:], 0)
		within, err := meanDistance(before, tail(before), normalized)
		if err != nil {
			fmt.Println("Falha ao medir deslocamento:", err)
			return
		}
		across, _ := meanDistance(before, after, normalized)
		errDist, _ := meanDistance(before, after, (*data.Input).ErrorDistance)
		fmt.Printf("Deslocamento da classe 0 | antes=%.3f | através=%.3f | erro=%.3f\n", within, across, errDist)
	}

	forest, err := models.NewForest(*trees, *alpha, *beta, *candidates, models.WithSeed(*seed))
	if err != nil {
		fmt.Println("Configuração inválida:", err)
		return
	}

	curve := report.NewCurve("prequential_acc", "resets")
	for start := 0; start < len(stream); start += *window {
		end := start + *window
		if end > len(stream) {
			end = len(stream)
		}
		correct := 0
		for _, in := range stream[start:end] {
			if p, err := forest.Predict(in); err == nil && p == in.Classification {
				correct++
			}
			if err := forest.TrainOne(in); err != nil {
				fmt.Println("Falha treino:", err)
				return
			}
		}
		acc := float64(correct) / float64(end-start)
		resets := forest.Resets()
		curve.Add(end, acc, float64(resets))
		fmt.Printf("%s | items=%d | acc=%.3f | resets=%d\n", forest.Name(), end, acc, resets)
	}

	if err := report.WriteCurveCSV(*outCsv, curve); err != nil {
		fmt.Println("Erro ao salvar CSV:", err)
	} else {
		fmt.Println("Curva salva em:", *outCsv)
	}
	accOnly := &report.Curve{X: curve.X, Series: curve.Series[:1]}
	if err := report.PlotCurve(*outImg, "Acurácia prequencial com mudança de conceito", "Acurácia", accOnly); err != nil {
		fmt.Println("Erro ao salvar PNG:", err)
	} else {
		fmt.Println("Gráfico salvo em:", *outImg)
	}
}

func byClass(items []*data.Input, class int) []*data.Input {
	var out []*data.Input
	for _, in := range items {
		if in.Classification == class {
			out = append(out, in)
		}
	}
	return out
}

// meanDistance pairs a[i] with b[i] and averages dist over the pairs.
func meanDistance(a, b []*data.Input, dist func(x, y *data.Input) (float64, error)) (float64, error) {
	n := min(len(a), len(b))
	if n == 0 {
		return 0, nil
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d, err := dist(a[i], b[i])
		if err != nil {
			return 0, err
		}
		sum += d
	}
	return sum / float64(n), nil
}

func tail(items []*data.Input) []*data.Input {
	if len(items) == 0 {
		return nil
	}
	return items[1:]
}

func normalized(x, y *data.Input) (float64, error) { return x.Distance(y, true) }
