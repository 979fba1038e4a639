package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/Sodfaa/blob"
	"github.com/Govind-619/Sodfaa/config"
	"github.com/Govind-619/Sodfaa/controllers"
	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "owner@sodfaa.com"
	adminPassword = "hunter22"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	h      *controllers.Controller
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Env:            "test",
		GatewayDriver:  "memory",
		JWTSecret:      "test-jwt-secret",
		SessionSecret:  "test-session-secret",
		AdminEmail:     adminEmail,
		AdminPassword:  adminPassword,
		UploadDir:      dir,
		PublicBaseURL:  "http://localhost:8080",
		WhatsAppNumber: "201031901879",
	}
	gw := gateway.NewMemoryGateway(gateway.NewLocalFeed())
	t.Cleanup(func() { _ = gw.Close() })

	h, err := controllers.New(cfg, gw, blob.NewLocalStore(dir, "/uploads"))
	require.NoError(t, err)
	return &testApp{h: h, router: SetupRouter(h)}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/v1/admin/login", gin.H{"email": adminEmail, "password": adminPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	decode(t, w, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

func (a *testApp) seedOffer(t *testing.T, name string, end time.Time, active bool) string {
	t.Helper()
	id, err := a.h.Offers.Create(context.Background(), models.Offer{
		ProductID:     "p-" + name,
		ProductName:   name,
		OriginalPrice: 100,
		Discount:      20,
		EndTime:       end,
		IsActive:      active,
	})
	require.NoError(t, err)
	return id
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = app.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/admin/offers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/v1/admin/offers", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/admin/login", gin.H{"email": adminEmail, "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/v1/admin/login", gin.H{"email": "someone@else.com", "password": adminPassword}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/v1/admin/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/admin/offers", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOffer(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	ctx := context.Background()

	productID, err := app.h.Products.Create(ctx, models.Product{
		Name:   "حقيبة سهرة",
		Price:  250,
		Images: []string{"/uploads/products/a.jpg"},
	})
	require.NoError(t, err)
	end := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	t.Run("snapshots the product", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/v1/admin/offers", gin.H{
			"productId": productID, "discount": 30, "endTime": end,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var offer models.Offer
		decode(t, w, &offer)
		assert.NotEmpty(t, offer.ID)
		assert.Equal(t, "حقيبة سهرة", offer.ProductName)
		assert.Equal(t, 250.0, offer.OriginalPrice)
		assert.True(t, offer.IsActive)
	})

	t.Run("unknown product needs a snapshot", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/v1/admin/offers", gin.H{
			"productId": "missing", "discount": 30, "endTime": end,
		}, token)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = app.do(t, http.MethodPost, "/v1/admin/offers", gin.H{
			"productId": "missing", "discount": 30, "endTime": end,
			"productName": "Tote", "originalPrice": 90,
		}, token)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("zero discount is allowed", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/v1/admin/offers", gin.H{
			"productId": productID, "discount": 0, "endTime": end,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var offer models.Offer
		decode(t, w, &offer)
		assert.Equal(t, 0, offer.Discount)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []gin.H{
			{"productId": productID, "endTime": end},
			{"productId": productID, "discount": -1, "endTime": end},
			{"productId": productID, "discount": 101, "endTime": end},
			{"productId": productID, "discount": 10, "endTime": "tomorrow"},
			{"productId": productID, "discount": 10, "endTime": time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)},
			{"discount": 10, "endTime": end},
		}
		for _, body := range cases {
			w := app.do(t, http.MethodPost, "/v1/admin/offers", body, token)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})
}

func TestOfferGridShowsOnlyEffectiveOffers(t *testing.T) {
	app := newTestApp(t)
	now := time.Now()
	live := app.seedOffer(t, "live", now.Add(time.Hour), true)
	app.seedOffer(t, "off", now.Add(time.Hour), false)
	app.seedOffer(t, "gone", now.Add(-time.Hour), true)

	w := app.do(t, http.MethodGet, "/v1/offers?lang=en", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Cards []struct {
			ID        string `json:"id"`
			PriceText string `json:"priceText"`
		} `json:"cards"`
		Banner *struct {
			OfferID string `json:"offerId"`
		} `json:"banner"`
	}
	decode(t, w, &view)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, live, view.Cards[0].ID)
	assert.Equal(t, "80.00", view.Cards[0].PriceText)
	require.NotNil(t, view.Banner)
	assert.Equal(t, live, view.Banner.OfferID)
}

func TestOfferDetail(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	t.Run("missing offer", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/v1/offers/nope", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decode(t, w, nil).Message, "العرض غير موجود")
	})

	t.Run("running offer", func(t *testing.T) {
		id := app.seedOffer(t, "running", time.Now().Add(2*time.Hour), true)
		w := app.do(t, http.MethodGet, "/v1/offers/"+id, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var view struct {
			Ended     bool   `json:"ended"`
			Countdown string `json:"countdown"`
		}
		decode(t, w, &view)
		assert.False(t, view.Ended)
		assert.Contains(t, view.Countdown, "ساعة")
	})

	t.Run("ended offer is removed", func(t *testing.T) {
		id := app.seedOffer(t, "ended", time.Now().Add(-time.Second), true)
		w := app.do(t, http.MethodGet, "/v1/offers/"+id, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var view struct {
			Ended bool `json:"ended"`
		}
		decode(t, w, &view)
		assert.True(t, view.Ended)

		assert.Eventually(t, func() bool {
			_, err := app.h.Offers.Get(ctx, id)
			return err != nil
		}, time.Second, 10*time.Millisecond)
	})
}

func TestSelectedOfferSurvivesInSession(t *testing.T) {
	app := newTestApp(t)
	id := app.seedOffer(t, "picked", time.Now().Add(time.Hour), true)

	w := app.do(t, http.MethodPost, "/v1/offers/"+id+"/select", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	require.NoError(t, app.h.Offers.DeleteByID(context.Background(), id))

	req := httptest.NewRequest(http.MethodGet, "/v1/offers/"+id, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOfferWhatsApp(t *testing.T) {
	app := newTestApp(t)
	live := app.seedOffer(t, "Tote", time.Now().Add(time.Hour), true)
	ended := app.seedOffer(t, "Clutch", time.Now().Add(-time.Hour), true)

	w := app.do(t, http.MethodGet, "/v1/offers/"+live+"/whatsapp", nil, "")
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://wa.me/201031901879?text="), location)
	assert.Contains(t, location, "Tote")
	assert.NotContains(t, location, "+")

	w = app.do(t, http.MethodGet, "/v1/offers/"+ended+"/whatsapp", nil, "")
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestAdminListAndDelete(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	now := time.Now()
	live := app.seedOffer(t, "live", now.Add(time.Hour), true)
	app.seedOffer(t, "off", now.Add(time.Hour), false)
	app.seedOffer(t, "gone", now.Add(-time.Hour), true)

	w := app.do(t, http.MethodGet, "/v1/admin/offers", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Offers []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"offers"`
		Total int `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, 3, list.Total)

	statuses := map[string]int{}
	for _, row := range list.Offers {
		statuses[row.Status]++
	}
	assert.Equal(t, map[string]int{"effective": 1, "inactive": 1, "expired": 1}, statuses)

	w = app.do(t, http.MethodDelete, "/v1/admin/offers/"+live, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodDelete, "/v1/admin/offers/"+live, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/admin/offers", nil, token)
	decode(t, w, &list)
	assert.Equal(t, 2, list.Total)
}

func TestDashboardStats(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	ctx := context.Background()
	now := time.Now()
	soon := app.seedOffer(t, "soon", now.Add(time.Hour), true)
	app.seedOffer(t, "later", now.Add(5*time.Hour), true)
	app.seedOffer(t, "off", now.Add(time.Hour), false)
	app.seedOffer(t, "gone", now.Add(-time.Hour), true)

	_, err := app.h.Reviews.Submit(ctx, models.Review{CustomerName: "Mona", Rating: 5, Comment: "جميلة"})
	require.NoError(t, err)
	approvedID, err := app.h.Reviews.Submit(ctx, models.Review{CustomerName: "Sara", Rating: 4, Comment: "ممتازة"})
	require.NoError(t, err)
	require.NoError(t, app.h.Reviews.Approve(ctx, approvedID, true))

	w := app.do(t, http.MethodGet, "/v1/admin/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats struct {
		Offers struct {
			Total     int `json:"total"`
			Effective int `json:"effective"`
			Inactive  int `json:"inactive"`
			Expired   int `json:"expired"`
		} `json:"offers"`
		EndingSoon *struct {
			OfferID string `json:"offerId"`
		} `json:"endingSoon"`
		PendingReviews int `json:"pendingReviews"`
		Reviews        struct {
			TotalReviews int `json:"totalReviews"`
		} `json:"reviews"`
	}
	decode(t, w, &stats)
	assert.Equal(t, 4, stats.Offers.Total)
	assert.Equal(t, 2, stats.Offers.Effective)
	assert.Equal(t, 1, stats.Offers.Inactive)
	assert.Equal(t, 1, stats.Offers.Expired)
	require.NotNil(t, stats.EndingSoon)
	assert.Equal(t, soon, stats.EndingSoon.OfferID)
	assert.Equal(t, 1, stats.PendingReviews)
	assert.Equal(t, 1, stats.Reviews.TotalReviews)
}

func TestSubmitReviewRejectsMarkup(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/reviews", gin.H{
		"customerName": "Mona", "rating": 5, "comment": "<script>alert(1)</script>",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(t, http.MethodPost, "/v1/reviews", gin.H{
		"customerName": "منى", "rating": 5, "comment": "حقيبة رائعة",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestExportOffers(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	app.seedOffer(t, "Tote", time.Now().Add(time.Hour), true)

	w := app.do(t, http.MethodGet, "/v1/admin/offers/export", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())

	w = app.do(t, http.MethodGet, "/v1/admin/offers/export?format=pdf", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = app.do(t, http.MethodGet, "/v1/admin/offers/export?format=csv", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBannerText(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/v1/admin/banner-text", gin.H{"text": "شحن مجاني", "order": 2}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.BannerText
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = app.do(t, http.MethodPost, "/v1/admin/banner-text", gin.H{"text": "مرحباً", "order": 1, "isActive": false}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/v1/admin/banner-text", gin.H{"text": "<script>alert(1)</script>"}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(t, http.MethodGet, "/v1/banner-text", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var storefront struct {
		Banners []models.BannerText `json:"banners"`
	}
	decode(t, w, &storefront)
	require.Len(t, storefront.Banners, 1)
	assert.Equal(t, "شحن مجاني", storefront.Banners[0].Text)

	w = app.do(t, http.MethodPut, "/v1/admin/banner-text/"+created.ID, gin.H{"isActive": false}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/admin/banner-text", nil, token)
	var admin struct {
		Banners []models.BannerText `json:"banners"`
	}
	decode(t, w, &admin)
	assert.Len(t, admin.Banners, 2)

	w = app.do(t, http.MethodDelete, "/v1/admin/banner-text/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodDelete, "/v1/admin/banner-text/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/v1/admin/banner-text", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateDiscountCode(t *testing.T) {
	app := newTestApp(t)
	_, err := app.h.DiscountCodes.Create(context.Background(), models.DiscountCode{
		Code:               "EID10",
		DiscountPercentage: 10,
		IsActive:           true,
	})
	require.NoError(t, err)

	w := app.do(t, http.MethodPost, "/v1/discount-codes/validate", gin.H{"code": " eid10 ", "orderAmount": 200}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		DiscountAmount string `json:"discountAmount"`
		Total          string `json:"total"`
	}
	decode(t, w, &data)
	assert.Equal(t, "20.00", data.DiscountAmount)
	assert.Equal(t, "180.00", data.Total)

	w = app.do(t, http.MethodPost, "/v1/discount-codes/validate", gin.H{"code": "NOPE", "orderAmount": 200}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w, nil).Message, "Invalid discount code")
}

func TestOfferStreamEndsWithBack(t *testing.T) {
	app := newTestApp(t)
	id := app.seedOffer(t, "ending", time.Now().Add(-time.Millisecond), true)

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/offers/"+id+"/stream?lang=en", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(body)

	ended := strings.Index(out, "event:ended")
	back := strings.Index(out, "event:back")
	require.NotEqual(t, -1, ended, out)
	require.NotEqual(t, -1, back, out)
	assert.Less(t, ended, back)
	assert.Equal(t, 1, strings.Count(out, "event:ended"))
	assert.Contains(t, out, "Offer ended")

	assert.Eventually(t, func() bool {
		_, err := app.h.Offers.Get(context.Background(), id)
		return err != nil
	}, time.Second, 10*time.Millisecond)
}
