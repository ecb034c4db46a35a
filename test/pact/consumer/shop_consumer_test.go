//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-shop-server/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type addressPayload struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

type memberPayload struct {
	ID      int64          `json:"id,omitempty"`
	Name    string         `json:"name"`
	Address addressPayload `json:"address"`
}

type orderPayload struct {
	ID         int64  `json:"id"`
	MemberName string `json:"memberName"`
	Status     string `json:"status"`
	TotalPrice int    `json:"totalPrice"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestShopPortalContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	address := addressPayload{City: "Seoul", Street: "River 1", Zipcode: "06000"}
	addressMatcher := matchers.Map{
		"city":    matchers.Like(address.City),
		"street":  matchers.Like(address.Street),
		"zipcode": matchers.Like(address.Zipcode),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateMembersBaseline).
		UponReceiving("a request to register a member").
		WithRequest("POST", "/api/v1/members", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":    matchers.Like(pacttest.ExampleMemberName()),
				"address": addressMatcher,
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"id": matchers.Like(int64(1))})
		})

	pact.AddInteraction().
		Given(pacttest.StateMemberExists).
		UponReceiving("a request to fetch an existing member").
		WithRequest("GET", fmt.Sprintf("/api/v1/members/%d", pacttest.ExistingMemberID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":      matchers.Like(pacttest.ExistingMemberID),
				"name":    matchers.Like(pacttest.ExampleMemberName()),
				"address": addressMatcher,
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateMemberMissing).
		UponReceiving("a request for a missing member").
		WithRequest("GET", fmt.Sprintf("/api/v1/members/%d", pacttest.MissingMemberID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderPlaceable).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/api/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"memberId": matchers.Like(pacttest.ExistingMemberID),
				"itemId":   matchers.Like(pacttest.StockedItemID),
				"count":    matchers.Like(2),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":         matchers.Like(int64(1)),
				"memberName": matchers.Like(pacttest.ExampleMemberName()),
				"status":     matchers.Term("ORDERED", "ORDERED|CANCELLED"),
				"totalPrice": matchers.Like(20000),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newShopClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var created struct {
			ID int64 `json:"id"`
		}
		if err := client.do(ctx, http.MethodPost, "/api/v1/members", memberPayload{Name: pacttest.ExampleMemberName(), Address: address}, &created); err != nil {
			return fmt.Errorf("register member: %w", err)
		}
		if created.ID == 0 {
			return fmt.Errorf("expected registered member ID to be set")
		}

		var fetched memberPayload
		if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/members/%d", pacttest.ExistingMemberID), nil, &fetched); err != nil {
			return fmt.Errorf("get member: %w", err)
		}
		if fetched.ID != pacttest.ExistingMemberID {
			return fmt.Errorf("expected member id %d, got %+v", pacttest.ExistingMemberID, fetched)
		}

		err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/members/%d", pacttest.MissingMemberID), nil, nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for member %d, got %v", pacttest.MissingMemberID, err)
		}

		var order orderPayload
		placement := map[string]any{"memberId": pacttest.ExistingMemberID, "itemId": pacttest.StockedItemID, "count": 2}
		if err := client.do(ctx, http.MethodPost, "/api/v1/orders", placement, &order); err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order.Status != "ORDERED" {
			return fmt.Errorf("expected ORDERED, got %q", order.Status)
		}
		return nil
	})
	require.NoError(t, err)
}

type shopClient struct {
	baseURL    string
	httpClient *http.Client
}

func newShopClient(config pactconsumer.MockServerConfig) *shopClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &shopClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *shopClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, title: problem.Title, detail: problem.Detail}
}
