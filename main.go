package main

import "github.com/Eutropios/WarMAC/cmd"

func main() {
	cmd.Execute()
}
