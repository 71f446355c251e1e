package strap_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStrap(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Strap Suite")
}
