package main

import (
	"oss.terrastruct.com/blockdiag/diagcli"
	"oss.terrastruct.com/blockdiag/lib/xmain"
)

func main() {
	xmain.Main(diagcli.Run)
}
