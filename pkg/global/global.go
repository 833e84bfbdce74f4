package global

var (
	Version        = "0.0.1"
	BuildTime      = "none"
	Verbose        = false
	ConfigFilename = "boxkit.yaml"

	// LabelNamespace is the prefix for labels boxkit sets on built images.
	LabelNamespace = "run.boxkit."
)
