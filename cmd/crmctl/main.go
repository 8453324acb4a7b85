package main

import "github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd"

func main() {
	cmd.Execute()
}
