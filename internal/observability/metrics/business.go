package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// ArticlesByStatus tracks the number of articles per editorial status
	// and site. Refreshed periodically by the worker.
	ArticlesByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "articles_by_status",
			Help: "Number of articles per editorial status",
		},
		[]string{"site", "status"},
	)

	// ArticlesPublishedTotal counts approvals by site
	ArticlesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_published_total",
			Help: "Total number of articles approved for publication",
		},
		[]string{"site"},
	)

	// ArticlesRejectedTotal counts rejections by site
	ArticlesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_rejected_total",
			Help: "Total number of articles rejected in review",
		},
		[]string{"site"},
	)

	// ArticleViewsTotal counts recorded article views
	ArticleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "article_views_total",
			Help: "Total number of recorded article views",
		},
	)

	// RegistrationsTotal counts successful account registrations
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of successful account registrations",
		},
	)

	// LoginFailuresTotal counts failed authentication attempts
	LoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of failed authentication attempts",
		},
	)

	// SubscriptionsActive tracks the current number of active newsletter
	// subscriptions. Refreshed by the worker.
	SubscriptionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsletter_subscriptions_active",
			Help: "Number of active newsletter subscriptions",
		},
	)

	// ResetTokensPurgedTotal counts expired password reset tokens removed
	// by the maintenance job.
	ResetTokensPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reset_tokens_purged_total",
			Help: "Total number of expired password reset tokens purged",
		},
	)
)

// Mail metrics track outbound SMTP activity
var (
	// MailSent counts successfully delivered mails
	MailSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_sent_total",
			Help: "Total number of mails handed to the SMTP relay",
		},
	)

	// MailSkipped counts sends skipped because SMTP was not configured
	MailSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_skipped_total",
			Help: "Total number of mails skipped due to missing SMTP configuration",
		},
	)

	// MailFailed counts sends that failed after retries
	MailFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_failed_total",
			Help: "Total number of mails that failed after retries",
		},
	)
)

// RecordArticlePublished records an approval.
func RecordArticlePublished(site string) {
	ArticlesPublishedTotal.WithLabelValues(site).Inc()
}

// RecordArticleRejected records a rejection.
func RecordArticleRejected(site string) {
	ArticlesRejectedTotal.WithLabelValues(site).Inc()
}

// UpdateArticlesByStatus refreshes the per-status gauge for a site.
func UpdateArticlesByStatus(site string, counts map[string]int64) {
	for status, count := range counts {
		ArticlesByStatus.WithLabelValues(site, status).Set(float64(count))
	}
}
