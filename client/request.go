package client

import (
	"net"
	"net/http"
)

// UserIP returns the submitting address: the Client-IP header set by a
// proxy if present, otherwise the host part of RemoteAddr.
func UserIP(r *http.Request) string {
	if ip := r.Header.Get("Client-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SubmissionFromRequest builds a Submission from the incoming request
func SubmissionFromRequest(r *http.Request, email, username string) Submission {
	return Submission{
		UserIP:    UserIP(r),
		Email:     email,
		Username:  username,
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
}
