package main

import "github.com/dd-japan/fargate-data-api/cmd"

func main() {
	cmd.Execute()
}
