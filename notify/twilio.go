package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/room4-2/frontdesk/domain"
)

// Twilio sends SMS through the Twilio Messages API.
type Twilio struct {
	AccountSID  string
	AuthToken   string
	From        string
	CountryCode string
	rest        *twilio.RestClient
}

// NewTwilio returns a client for the given account. A non-empty baseURL
// redirects API calls to another host, such as a local relay.
func NewTwilio(accountSID, authToken, from, baseURL, countryCode string) *Twilio {
	httpClient := &http.Client{Timeout: defaultTimeout}
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
			httpClient.Transport = rehost{target: u, next: http.DefaultTransport}
		}
	}

	c := &twclient.Client{
		Credentials: twclient.NewCredentials(accountSID, authToken),
		HTTPClient:  httpClient,
	}
	c.SetAccountSid(accountSID)

	return &Twilio{
		AccountSID:  accountSID,
		AuthToken:   authToken,
		From:        from,
		CountryCode: countryCode,
		rest:        twilio.NewRestClientWithParams(twilio.ClientParams{Client: c}),
	}
}

// Send delivers req.Message to req.Contact. The message body is never logged.
// The Twilio client takes no context; the Dispatcher bounds the call.
func (t *Twilio) Send(ctx context.Context, req domain.NotificationRequest) error {
	if t.AccountSID == "" || t.AuthToken == "" {
		return fmt.Errorf("twilio: credentials not configured")
	}
	to := E164(req.Contact, t.CountryCode)
	if to == "" {
		return domain.ErrNoContact
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.From)
	params.SetBody(req.Message)

	if _, err := t.rest.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	return nil
}

// rehost sends every request to target's scheme and host, keeping the path.
type rehost struct {
	target *url.URL
	next   http.RoundTripper
}

func (r rehost) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = r.target.Scheme
	out.URL.Host = r.target.Host
	out.Host = r.target.Host
	return r.next.RoundTrip(out)
}
