package main

import "github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/cmd"

func main() {
	cmd.Execute()
}
