package main

import (
	_ "qcube.GO/api/customers"
	_ "qcube.GO/api/dashboard"
	_ "qcube.GO/api/inventory"
	_ "qcube.GO/api/orders"
	_ "qcube.GO/api/printing"
	"qcube.GO/cmd"
	"qcube.GO/config"
	_ "qcube.GO/cron/jobs"
	_ "qcube.GO/custom"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cmd.Execute()
}
