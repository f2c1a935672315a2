package verification

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestVerification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Verification Suite")
}

var _ = Describe("Result", func() {
	It("Correct is the zero value", func() {
		var r Result
		Expect(r.IsCorrect()).Should(BeTrue())
		Expect(r.Expect()).Should(BeNil())
	})

	It("AndExpect short-circuits on first failure", func() {
		calls := 0
		r := Failed("first").AndExpect(func() Result {
			calls++
			return Correct
		})
		Expect(r.IsCorrect()).Should(BeFalse())
		Expect(r.Reason()).Should(Equal("first"))
		Expect(calls).Should(Equal(0))
	})

	It("AndExpect evaluates next when Correct", func() {
		r := Correct.AndExpect(func() Result {
			return Failed("second")
		})
		Expect(r.Reason()).Should(Equal("second"))
	})

	It("OnFailure invokes only on failure", func() {
		seen := ""
		Correct.OnFailure(func(reason string) { seen = reason })
		Expect(seen).Should(Equal(""))

		Failed("boom").OnFailure(func(reason string) { seen = reason })
		Expect(seen).Should(Equal("boom"))
	})

	It("All short-circuits", func() {
		order := []int{}
		r := All(
			func() Result { order = append(order, 1); return Correct },
			func() Result { order = append(order, 2); return Failed("nope") },
			func() Result { order = append(order, 3); return Correct },
		)
		Expect(r.IsCorrect()).Should(BeFalse())
		Expect(order).Should(Equal([]int{1, 2}))
	})
})
