package otp

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SMTPSender", func() {
	It("states the configured lifetime in the mail body", func() {
		sender := NewSMTPSender("mail.office.local:587", "noreply@office.local", "", "", 10*time.Minute)
		Expect(sender.body("123456")).To(ContainSubstring("123456"))
		Expect(sender.body("123456")).To(ContainSubstring("expires in 10 minutes"))

		short := NewSMTPSender("mail.office.local:587", "noreply@office.local", "", "", 2*time.Minute)
		Expect(short.body("654321")).To(ContainSubstring("expires in 2 minutes"))
	})

	It("never advertises less than a minute", func() {
		sender := NewSMTPSender("mail.office.local:587", "noreply@office.local", "", "", 30*time.Second)
		Expect(sender.body("123456")).To(ContainSubstring("expires in 1 minutes"))
	})
})
