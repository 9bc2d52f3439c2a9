package statement

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("classifyProvenance", func() {
	var (
		producer string
		creator  string
		verdict  provenanceVerdict
	)

	ginkgo.BeforeEach(func() {
		producer = ""
		creator = ""
	})

	ginkgo.JustBeforeEach(func() {
		verdict = classifyProvenance(NewProvenance(producer, creator))
	})

	ginkgo.When("the producer is a known editor", func() {
		ginkgo.BeforeEach(func() {
			producer = "Microsoft Word"
		})

		ginkgo.It("should classify as editor tier", func() {
			Expect(verdict.tier).To(Equal(TierEditor))
		})

		ginkgo.It("should flag a strong edit signal", func() {
			Expect(verdict.strongEdit).To(BeTrue())
		})

		ginkgo.It("should apply the large penalty", func() {
			Expect(verdict.delta).To(Equal(-penaltyEditorTool))
		})

		ginkgo.It("should name the tool in the message", func() {
			Expect(verdict.message).To(ContainSubstring("microsoft word"))
		})
	})

	ginkgo.When("the creator is an editor but the producer is not", func() {
		ginkgo.BeforeEach(func() {
			producer = "Quartz PDFContext"
			creator = "Canva"
		})

		ginkgo.It("should still classify as editor tier", func() {
			Expect(verdict.tier).To(Equal(TierEditor))
			Expect(verdict.strongEdit).To(BeTrue())
		})
	})

	ginkgo.When("the producer is a generic PDF tool", func() {
		ginkgo.BeforeEach(func() {
			producer = "Microsoft: Print To PDF"
		})

		ginkgo.It("should classify as generic tier with the small penalty", func() {
			Expect(verdict.tier).To(Equal(TierGenericTool))
			Expect(verdict.delta).To(Equal(-penaltyGenericTool))
			Expect(verdict.strongEdit).To(BeFalse())
		})
	})

	ginkgo.When("the producer is a system or bank-grade renderer", func() {
		ginkgo.BeforeEach(func() {
			producer = "Quartz PDFContext"
		})

		ginkgo.It("should classify as system tier with no penalty", func() {
			Expect(verdict.tier).To(Equal(TierSystem))
			Expect(verdict.delta).To(BeZero())
		})
	})

	ginkgo.When("metadata is non-empty but unrecognized", func() {
		ginkgo.BeforeEach(func() {
			producer = "AcmeStatements 9000"
		})

		ginkgo.It("should classify as unrecognized with the minimal penalty", func() {
			Expect(verdict.tier).To(Equal(TierUnrecognized))
			Expect(verdict.delta).To(Equal(-penaltyUnknownTool))
		})
	})

	ginkgo.When("metadata is completely empty", func() {
		ginkgo.It("should classify as empty with the minimal penalty", func() {
			Expect(verdict.tier).To(Equal(TierEmpty))
			Expect(verdict.delta).To(Equal(-penaltyEmptyMetadata))
			Expect(verdict.strongEdit).To(BeFalse())
		})
	})

	ginkgo.When("metadata is only whitespace", func() {
		ginkgo.BeforeEach(func() {
			producer = "   "
		})

		ginkgo.It("should treat it as empty", func() {
			Expect(verdict.tier).To(Equal(TierEmpty))
		})
	})
})

var _ = ginkgo.Describe("classifyAISignals", func() {
	var (
		producer string
		creator  string
		level    AILevel
		summary  []string
	)

	ginkgo.BeforeEach(func() {
		producer = ""
		creator = ""
	})

	ginkgo.JustBeforeEach(func() {
		level, summary = classifyAISignals(NewProvenance(producer, creator))
	})

	ginkgo.When("metadata names a headless renderer", func() {
		ginkgo.BeforeEach(func() {
			producer = "wkhtmltopdf 0.12.6"
		})

		ginkgo.It("should report a strong signal naming the tool", func() {
			Expect(level).To(Equal(AIStrong))
			Expect(summary).To(HaveLen(1))
			Expect(summary[0]).To(ContainSubstring("wkhtmltopdf"))
		})
	})

	ginkgo.When("metadata names a generative AI service", func() {
		ginkgo.BeforeEach(func() {
			creator = "ChatGPT export"
		})

		ginkgo.It("should report a strong signal", func() {
			Expect(level).To(Equal(AIStrong))
		})
	})

	ginkgo.When("metadata is completely empty", func() {
		ginkgo.It("should report a possible signal", func() {
			Expect(level).To(Equal(AIPossible))
			Expect(summary).NotTo(BeEmpty())
		})
	})

	ginkgo.When("metadata carries a generic generator marker", func() {
		ginkgo.BeforeEach(func() {
			producer = "Statement Generator v2"
		})

		ginkgo.It("should report a possible signal", func() {
			Expect(level).To(Equal(AIPossible))
		})
	})

	ginkgo.When("metadata is an ordinary renderer", func() {
		ginkgo.BeforeEach(func() {
			producer = "Quartz PDFContext"
		})

		ginkgo.It("should report no signal and no messages", func() {
			Expect(level).To(Equal(AINone))
			Expect(summary).To(BeEmpty())
		})
	})
})
