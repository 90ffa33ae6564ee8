package iface

// NamesConf points at a class list either inline or as a .names file.
type NamesConf struct {
	IsFile bool
	Data   any
}

type ExportRequest struct {
	ModelPath string
	Format    string
	ImgSize   int
}

type ExportResult struct {
	ModelPath  string
	OutputPath string
	Format     string
}

// ModelReport describes what a reloaded model exposes.
type ModelReport struct {
	Path     string
	Dims     []int
	Channels int
	Boxes    int
	Classes  int
}
