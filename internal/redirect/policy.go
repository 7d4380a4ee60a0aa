package redirect

import "net/http"

// Decide applies the method-switch and body-retention rules to a
// redirect status. 301, 303 and legacy 302 downgrade everything but
// GET, HEAD and OPTIONS to a bodiless GET, matching long-deployed
// client behavior rather than current RFC semantics. strict302 opts
// 302 into the by-the-book behavior, which preserves method and body.
// 307 and 308 always preserve both.
func Decide(method string, status int, strict302 bool) (useMethod string, keepBody bool) {
	switchToGet := method != http.MethodGet &&
		method != http.MethodHead &&
		method != http.MethodOptions &&
		(status == http.StatusMovedPermanently ||
			status == http.StatusSeeOther ||
			(status == http.StatusFound && !strict302))

	keepBody = status == http.StatusTemporaryRedirect ||
		status == http.StatusPermanentRedirect ||
		(status == http.StatusFound && strict302)

	if switchToGet {
		return http.MethodGet, keepBody
	}
	return method, keepBody
}
