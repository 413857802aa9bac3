package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/zoobzio/fade"
)

var numberRef = fade.Reference{Type: fade.KindNumber}

func BenchmarkTransition_CalculateInstant(b *testing.B) {
	tr := fade.New[float64](numberRef, fade.Constant[float64]{Value: 1}, nil, fade.TransitionOptions{})
	globals := fade.Globals{Zoom: 12}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Calculate(globals, nil)
	}
}

func BenchmarkTransition_CalculateFading(b *testing.B) {
	old := fade.New[float64](numberRef, fade.Constant[float64]{Value: 0}, nil, fade.TransitionOptions{})
	tr := fade.New[float64](numberRef, fade.Constant[float64]{Value: 1}, old, fade.TransitionOptions{Duration: time.Hour})
	globals := fade.Globals{Time: tr.StartTime().Add(time.Minute)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Calculate(globals, nil)
	}
}

func BenchmarkTransition_CalculateColorFade(b *testing.B) {
	ref := fade.Reference{Type: fade.KindColor}
	old := fade.New[fade.Color](ref, fade.Constant[fade.Color]{Value: fade.MustParseColor("#000")}, nil, fade.TransitionOptions{})
	tr := fade.New[fade.Color](ref, fade.Constant[fade.Color]{Value: fade.MustParseColor("#fff")}, old, fade.TransitionOptions{Duration: time.Hour})
	globals := fade.Globals{Time: tr.StartTime().Add(time.Minute)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Calculate(globals, nil)
	}
}

func BenchmarkProperties_Declare(b *testing.B) {
	ctx := context.Background()
	props := fade.NewProperties[float64]()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		props.Declare(ctx, "fill-opacity", numberRef, fade.Constant[float64]{Value: float64(i % 2)}, fade.TransitionOptions{})
	}
}

func BenchmarkStyle_Apply(b *testing.B) {
	ctx := context.Background()
	style := fade.NewStyle()

	docs := make([]fade.Document, 2)
	for i := range docs {
		docs[i] = fade.Document{
			Transition: &fade.TransitionSpec{Duration: 300},
			Numbers:    map[string]float64{},
			Colors:     map[string]string{"fill-color": fmt.Sprintf("#%02x0000", i*255)},
		}
		for k := 0; k < 20; k++ {
			docs[i].Numbers[fmt.Sprintf("prop-%d", k)] = float64(i)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := style.Apply(ctx, docs[i%2]); err != nil {
			b.Fatal(err)
		}
	}
}
