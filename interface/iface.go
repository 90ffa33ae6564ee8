package iface

import "context"

// Exporter converts a trained model file into another format.
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
}

// Inspector reloads an exported model and reports its output head.
type Inspector interface {
	Inspect(path string, inputSize int) (ModelReport, error)
}
