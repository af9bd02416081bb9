package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	auction "github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionService"
	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	orders "github.com/yemichigona-bit/Ycs-BIdding-house/internal/orderService"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/repository"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/server"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/session"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// SetupTestRouter wires the full application over an in-memory repo and a
// fake clock, seeded with the two demo accounts and the given listings.
func SetupTestRouter(listings ...model.Listing) (*gin.Engine, *repository.MemoryRepo, clockwork.Clock) {
	gin.SetMode(gin.TestMode)

	clock := clockwork.NewFakeClockAt(testNow)
	repo := repository.NewMemoryRepo()

	repo.AddUser(model.User{UserID: "host1", Email: "admin@chigona.com", Name: "Chigona Admin", Role: model.RoleHost})
	repo.AddUser(model.User{UserID: "buyer1", Email: "buyer@chigona.com", Name: "Demo Buyer", Role: model.RoleBuyer})

	for _, listing := range listings {
		repo.AddListing(listing)
	}

	creds := session.Credentials{
		"admin@chigona.com": "admin123",
		"buyer@chigona.com": "buyer123",
	}

	auctionSvc := auction.NewAuctionService(repo, clock, 1, time.Minute)
	orderSvc := orders.NewOrderService(repo, clock)
	sessionSvc := session.NewService(repo, creds, []byte("test-secret"), time.Hour, clock)

	return server.SetupRouter(auctionSvc, orderSvc, sessionSvc), repo, clock
}

// openTestListing builds a public listing ending an hour from the fake now
func openTestListing(listingID string, startingPrice float64) model.Listing {
	return model.Listing{
		ListingID:     listingID,
		Title:         listingID + " title",
		Description:   listingID + " description",
		Category:      "Misc",
		Condition:     model.ConditionGood,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		Shipping:      10,
		EndDate:       testNow.Add(time.Hour),
		Visibility:    model.VisibilityPublic,
		SellerID:      "host1",
		SellerName:    "Chigona Admin",
	}
}

// ExecuteRequest executes an HTTP request, optionally with a Bearer token,
// and parses the JSON response envelope.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// Login authenticates one of the demo accounts and returns its token
func Login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	resp, w := ExecuteRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login should succeed for %s", email)

	data := resp["data"].(map[string]any)
	token := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}
