package pipeline

import (
	"context"
	"sync"
)

type Step string

const (
	StepAnalyzing  Step = "analyzing"
	StepExtracting Step = "extracting"
	StepImages     Step = "images"
	StepDesigning  Step = "designing"
	StepBuilding   Step = "building"
	StepFinalizing Step = "finalizing"
)

type Progress struct {
	Step    Step   `json:"step"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

var stepInfo = map[Step]Progress{
	StepAnalyzing:  {StepAnalyzing, 10, "Analizando tu negocio"},
	StepExtracting: {StepExtracting, 30, "Creando contenido"},
	StepImages:     {StepImages, 50, "Seleccionando imágenes"},
	StepDesigning:  {StepDesigning, 70, "Diseñando visual"},
	StepBuilding:   {StepBuilding, 90, "Construyendo bloques"},
	StepFinalizing: {StepFinalizing, 100, "Finalizando detalles"},
}

// emitter forwards progress to the caller's channel until closed. Sends
// never block past cancellation and never happen after close.
type emitter struct {
	mu     sync.Mutex
	ch     chan<- Progress
	closed bool
}

func (e *emitter) emit(ctx context.Context, step Step) {
	if e == nil || e.ch == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || ctx.Err() != nil {
		return
	}
	select {
	case e.ch <- stepInfo[step]:
	case <-ctx.Done():
	}
}

func (e *emitter) close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}
