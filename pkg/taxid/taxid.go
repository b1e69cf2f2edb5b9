// Package taxid validates Brazilian taxpayer identifiers: CPF for individuals
// and CNPJ for companies. Both carry two trailing mod-11 check digits.
package taxid

import (
	"errors"
	"strings"
)

type Kind int

const (
	Unknown Kind = iota
	CPF
	CNPJ
)

func (k Kind) String() string {
	switch k {
	case CPF:
		return "CPF"
	case CNPJ:
		return "CNPJ"
	}
	return "unknown"
}

var (
	ErrLength      = errors.New("CPF/CNPJ must have 11 (CPF) or 14 (CNPJ) digits")
	ErrInvalidCPF  = errors.New("invalid CPF")
	ErrInvalidCNPJ = errors.New("invalid CNPJ")
)

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Clean drops every non-digit, so "529.982.247-25" becomes "52998224725".
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate cleans s and checks it as a CPF or CNPJ depending on its length.
// It returns the digits-only form on success.
func Validate(s string) (string, Kind, error) {
	d := Clean(s)
	switch len(d) {
	case 11:
		if !IsValidCPF(d) {
			return d, CPF, ErrInvalidCPF
		}
		return d, CPF, nil
	case 14:
		if !IsValidCNPJ(d) {
			return d, CNPJ, ErrInvalidCNPJ
		}
		return d, CNPJ, nil
	}
	return d, Unknown, ErrLength
}

// Format renders a CPF as 000.000.000-00 and a CNPJ as 00.000.000/0000-00.
// Anything else comes back cleaned but otherwise untouched.
func Format(s string) string {
	d := Clean(s)
	switch len(d) {
	case 11:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	case 14:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
	}
	return d
}

func IsValidCPF(s string) bool {
	d := digits(Clean(s))
	if len(d) != 11 || repeated(d) {
		return false
	}
	for n := 9; n < 11; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			sum += d[i] * (n + 1 - i)
		}
		if checkDigit(sum) != d[n] {
			return false
		}
	}
	return true
}

func IsValidCNPJ(s string) bool {
	d := digits(Clean(s))
	if len(d) != 14 || repeated(d) {
		return false
	}
	if checkDigit(weighted(d[:12], cnpjWeights1)) != d[12] {
		return false
	}
	return checkDigit(weighted(d[:13], cnpjWeights2)) == d[13]
}

func checkDigit(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func weighted(d, w []int) int {
	sum := 0
	for i := range w {
		sum += d[i] * w[i]
	}
	return sum
}

func digits(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i] - '0')
	}
	return out
}

func repeated(d []int) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}
