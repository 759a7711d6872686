package cmd

import (
	_ "clawdeye-installer/cmd/compose"
	_ "clawdeye-installer/cmd/install"
	_ "clawdeye-installer/cmd/root"
	_ "clawdeye-installer/cmd/server"
	_ "clawdeye-installer/cmd/service"
)
