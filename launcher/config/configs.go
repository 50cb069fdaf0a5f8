package config

// Configs holds the named presets accepted by GetConfig.
var Configs = map[string]string{
	"default": defaultConfig,
	"fast":    fastConfig,
}

// defaultConfig paces starts for a host shared with other workloads. Other
// presets and user configs fall back to it for fields they leave out.
const defaultConfig = `{
	"CPUThreshold": 60,
	"AdmissionPoll": "4s",
	"HeavySettle": "4s",
	"LightSettle": "2s",
	"HeavyNodeTypes": ["qemu", "virtualbox", "vmware"],
	"ReadyTolerance": "90ms",
	"HTTPTries": 3,
	"RequestTimeout": "30s",
	"RequestsPerSecond": 0
}`

// fastConfig is for dedicated compute hosts with spare cores.
const fastConfig = `{
	"CPUThreshold": 80,
	"AdmissionPoll": "2s",
	"HeavySettle": "2s",
	"LightSettle": "500ms"
}`
