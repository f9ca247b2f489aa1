package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_Periodic BCFLAG = iota
	BC_Neumann
	BC_Reflecting
)

var BCNameMap = map[string]BCFLAG{
	"periodic":   BC_Periodic,
	"neumann":    BC_Neumann,
	"neuman":     BC_Neumann,
	"reflecting": BC_Reflecting,
	"wall":       BC_Reflecting,
}

var BCPrintNames = []string{"Periodic", "Neumann", "Reflecting"}

func (bc BCFLAG) String() string {
	if int(bc) < len(BCPrintNames) {
		return BCPrintNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", bc)
}

// NewBCFLAG looks up a boundary policy by name, case-insensitive.
func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var (
		ok bool
	)
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition %q, use one of periodic, neumann, reflecting", label)
	}
	return
}
