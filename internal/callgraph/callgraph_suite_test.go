package callgraph_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCallgraph(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Callgraph Suite")
}
