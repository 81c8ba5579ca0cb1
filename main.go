package main

import (
	"github.com/talentbase/hiring-pipeline/cmd"
)

func main() {
	cmd.Execute()
}
