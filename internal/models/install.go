package models

// Variant selects the distribution form being provisioned.
type Variant string

const (
	// Node runtime layout: release tarball extracted into the install
	// directory, processes launched directly.
	VariantNode Variant = "node"
	// Compose layout: image pulled and started by the container engine.
	VariantDocker Variant = "docker"
)

/**
 * InstallConfig carries everything the prompts collected for one run.
 * Built once per run and passed by value through the provisioning
 * pipeline; it is only serialized at the env-file boundary.
 * @property {string} License - License credential (required, non-empty)
 * @property {string} DashboardToken - Dashboard authentication secret (required, non-empty)
 * @property {string} ClawdHome/ClawdbotHome/OpenclawHome - Workspace paths the started system reads
 * @property {string} GatewayHost/GatewayPort - Upstream gateway the collector connects to
 * @property {int} DashboardPort - Port the dashboard is exposed on
 * @property {string} InstallDir - Root path for generated files and extracted artifacts
 */
type InstallConfig struct {
	Variant        Variant
	License        string
	DashboardToken string
	ClawdHome      string
	ClawdbotHome   string
	OpenclawHome   string
	GatewayHost    string
	GatewayPort    int
	DashboardPort  int
	InstallDir     string
}
