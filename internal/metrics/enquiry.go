package metrics

import "time"

// EnquirySent records an enquiry the relay accepted
func EnquirySent(service string, duration time.Duration) {
	EnquiriesTotal.WithLabelValues(service, "sent").Inc()
	EnquiryDispatchDuration.WithLabelValues("sent").Observe(duration.Seconds())
}

// EnquiryFailed records an enquiry the relay rejected or never saw
func EnquiryFailed(service string, duration time.Duration) {
	EnquiriesTotal.WithLabelValues(service, "failed").Inc()
	EnquiryDispatchDuration.WithLabelValues("failed").Observe(duration.Seconds())
}

// RepaymentCalculated records a server-side calculator render
func RepaymentCalculated() {
	RepaymentCalculations.Inc()
}
