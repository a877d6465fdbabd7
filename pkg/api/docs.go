// Package api provides the REST API of the paywall
// @title ChainPaywall API
// @version 1.0
// @description REST API for publishing paywalled content, issuing invoices and checking ownership
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/ChainPaywall
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
