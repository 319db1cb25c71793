package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"whoofsy-server/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	// Fuerza los repos in-memory aunque la máquina tenga DB_DSN exportado.
	t.Setenv("DB_DSN", "")

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_TagLifecycle(t *testing.T) {
	ts := newServer(t)

	// 1) Alta del dueño vía upsert de auth
	userID := createUser(t, ts.URL, map[string]any{
		"email": "ana@example.com",
		"name":  "Ana",
		"phone": "+5491100000000",
	})

	// 2) Activar TAG1 => 201
	{
		st, body := doReq(t, ts.URL, "POST", "/tags/activate", map[string]any{
			"code":    "TAG1",
			"user_id": userID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 activate, got %d body=%s", st, string(body))
		}
		var resp struct {
			Activated bool   `json:"activated"`
			Model     string `json:"model"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Activated || resp.Model != "smart_tag" {
			t.Fatalf("unexpected activate response: %s", string(body))
		}
	}

	// 3) Re-activar el mismo code => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/tags/activate", map[string]any{
			"code":    "TAG1",
			"user_id": userID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 re-activate, got %d", st)
		}
	}

	// 4) Alta de la mascota y link al tag
	petID := createPet(t, ts.URL, map[string]any{
		"owner_id":      userID,
		"name":          "Milo",
		"medical_notes": "epileptic",
	})
	{
		st, body := doReq(t, ts.URL, "POST", "/tags/link", map[string]any{
			"code":   "TAG1",
			"pet_id": petID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 link, got %d body=%s", st, string(body))
		}
		var resp struct {
			Success bool `json:"success"`
			Pet     struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"pet"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Success || resp.Pet.ID != petID || resp.Pet.Name != "Milo" {
			t.Fatalf("unexpected link response: %s", string(body))
		}
	}

	// 5) Escaneo del finder con geo => payload completo, sin alerta premium
	{
		st, body := doReq(t, ts.URL, "POST", "/scan", map[string]any{
			"code": "TAG1",
			"lat":  1.0,
			"lng":  2.0,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 scan, got %d body=%s", st, string(body))
		}

		var resp scanPayload
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "ACTIVE" {
			t.Fatalf("expected ACTIVE, got %q", resp.Status)
		}
		if resp.Pet.Name == nil || *resp.Pet.Name != "Milo" {
			t.Fatalf("expected pet name Milo, body=%s", string(body))
		}
		if resp.Pet.Medical.Notes == nil || *resp.Pet.Medical.Notes != "epileptic" {
			t.Fatalf("expected medical notes, body=%s", string(body))
		}
		if resp.Contact.Phone == nil || *resp.Contact.Phone != "+5491100000000" {
			t.Fatalf("expected owner phone, body=%s", string(body))
		}
		if resp.GoodSamaritanOffer.Headline == "" {
			t.Fatalf("offer must always be present, body=%s", string(body))
		}
		if resp.PremiumAlert != nil {
			t.Fatalf("basic tier must not carry premium_alert, body=%s", string(body))
		}
	}
}

func TestHTTP_Scan_UnknownAndUnactivated_SameNotFound(t *testing.T) {
	ts := newServer(t)

	// Ningún endpoint HTTP provisiona tags sin activar (eso lo cubre el
	// test del service); acá verificamos que dos codes desconocidos dan
	// respuestas idénticas, sin pista para enumerar inventario.
	st1, body1 := doReq(t, ts.URL, "POST", "/scan", map[string]any{"code": "TAG2"})
	st2, body2 := doReq(t, ts.URL, "POST", "/scan", map[string]any{"code": "GHOST"})

	if st1 != http.StatusNotFound || st2 != http.StatusNotFound {
		t.Fatalf("expected 404/404, got %d/%d", st1, st2)
	}
	if string(body1) != string(body2) {
		t.Fatalf("responses must be indistinguishable: %q vs %q", string(body1), string(body2))
	}
}

func TestHTTP_PremiumScan_AlertEchoesGPS(t *testing.T) {
	ts := newServer(t)

	userID := createUser(t, ts.URL, map[string]any{"email": "ana@example.com"})

	// 1) El collaborator de billing sube el plan
	{
		st, body := doReq(t, ts.URL, "PATCH", "/users/"+userID+"/tier?tier=premium", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 set tier, got %d body=%s", st, string(body))
		}
		var resp struct {
			Tier string `json:"tier"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Tier != "premium" {
			t.Fatalf("expected tier premium, body=%s", string(body))
		}
	}

	// 2) Tier inválido => 400; usuario desconocido => 404
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/users/"+userID+"/tier?tier=gold", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid tier, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/users/nobody/tier?tier=premium", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown user, got %d", st)
		}
	}

	// 3) Activar y escanear con GPS completo
	activateTag(t, ts.URL, "TAG1", userID)

	st, body := doReq(t, ts.URL, "POST", "/scan", map[string]any{
		"code":     "TAG1",
		"lat":      10.5,
		"lng":      20.1,
		"accuracy": 5.0,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 scan, got %d body=%s", st, string(body))
	}

	var resp scanPayload
	_ = json.Unmarshal(body, &resp)
	a := resp.PremiumAlert
	if a == nil {
		t.Fatalf("expected premium_alert, body=%s", string(body))
	}
	if a.Type != "scan_alert" || a.Channel != "email" || !a.Delivered {
		t.Fatalf("unexpected alert descriptor, body=%s", string(body))
	}
	if a.GPS.Lat == nil || *a.GPS.Lat != 10.5 ||
		a.GPS.Lng == nil || *a.GPS.Lng != 20.1 ||
		a.GPS.Accuracy == nil || *a.GPS.Accuracy != 5.0 {
		t.Fatalf("alert gps must echo the input, body=%s", string(body))
	}
}

func TestHTTP_PetStatus_InvalidValueRejected(t *testing.T) {
	ts := newServer(t)

	userID := createUser(t, ts.URL, map[string]any{"email": "ana@example.com"})
	petID := createPet(t, ts.URL, map[string]any{"owner_id": userID, "name": "Luna"})
	activateTag(t, ts.URL, "TAG9", userID)
	linkTag(t, ts.URL, "TAG9", petID)

	// 1) Marcar LOST
	{
		st, body := doReq(t, ts.URL, "PATCH", "/pets/"+petID+"/status?status=LOST", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 set LOST, got %d body=%s", st, string(body))
		}
	}

	// 2) Status inventado => 400 y el pet queda como estaba
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/pets/"+petID+"/status?status=MISSING", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid status, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d", st)
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "LOST" {
			t.Fatalf("pet must stay LOST, body=%s", string(body))
		}
	}

	// 3) El escaneo refleja el estado
	{
		st, body := doReq(t, ts.URL, "POST", "/scan", map[string]any{"code": "TAG9"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 scan, got %d body=%s", st, string(body))
		}
		var resp scanPayload
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "LOST" {
			t.Fatalf("expected LOST in scan, body=%s", string(body))
		}
	}

	// 4) Pet desconocido => 404
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/pets/nobody/status?status=LOST", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown pet, got %d", st)
		}
	}
}

func TestHTTP_Link_UnknownTagAndDanglingPet(t *testing.T) {
	ts := newServer(t)

	userID := createUser(t, ts.URL, map[string]any{"email": "ana@example.com"})

	// 1) Link sobre tag desconocido => 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/tags/link", map[string]any{
			"code":   "GHOST",
			"pet_id": "p-any",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown tag, got %d", st)
		}
	}

	// 2) Link a un pet_id inexistente: el write pasa, el read-back da 404
	activateTag(t, ts.URL, "TAG1", userID)
	{
		st, _ := doReq(t, ts.URL, "POST", "/tags/link", map[string]any{
			"code":   "TAG1",
			"pet_id": "p-missing",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 dangling pet, got %d", st)
		}
	}

	// 3) ...y el link quedó commiteado igual: el escaneo degrada a defaults
	{
		st, body := doReq(t, ts.URL, "POST", "/scan", map[string]any{"code": "TAG1"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 scan after dangling link, got %d body=%s", st, string(body))
		}
		var resp scanPayload
		_ = json.Unmarshal(body, &resp)
		if resp.Pet.Name != nil {
			t.Fatalf("dangling pet must degrade to null name, body=%s", string(body))
		}
	}
}

func TestHTTP_ReunionAndRedeem(t *testing.T) {
	ts := newServer(t)

	// 1) Primera reunión crea el cupón
	first := markReunion(t, ts.URL, "TAG1")
	if first.Redeemed || first.Offer == "" {
		t.Fatalf("unexpected first coupon: %+v", first)
	}

	// 2) Repetir es idempotente: mismo cupón, mismo id
	second := markReunion(t, ts.URL, "TAG1")
	if second.ID != first.ID {
		t.Fatalf("reunion must be idempotent, got %s then %s", first.ID, second.ID)
	}

	// 3) Redimir => 200; redimir de nuevo => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/coupons/"+first.ID+"/redeem", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 redeem, got %d body=%s", st, string(body))
		}
		var resp struct {
			Redeemed   bool    `json:"redeemed"`
			RedeemedAt *string `json:"redeemed_at"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Redeemed || resp.RedeemedAt == nil {
			t.Fatalf("expected redeemed coupon, body=%s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/coupons/"+first.ID+"/redeem", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 double redeem, got %d", st)
		}
	}

	// 4) Cupón desconocido => 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/coupons/nobody/redeem", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown coupon, got %d", st)
		}
	}

	// 5) Con el anterior redimido, una nueva reunión emite cupón fresco
	third := markReunion(t, ts.URL, "TAG1")
	if third.ID == first.ID || third.Redeemed {
		t.Fatalf("expected fresh coupon after redeem, got %+v", third)
	}
}

func TestHTTP_ScanTest_NoGeo(t *testing.T) {
	ts := newServer(t)

	userID := createUser(t, ts.URL, map[string]any{"email": "ana@example.com"})
	activateTag(t, ts.URL, "TAG1", userID)

	// code requerido
	{
		st, _ := doReq(t, ts.URL, "POST", "/scan/test", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 without code, got %d", st)
		}
	}

	st, body := doReq(t, ts.URL, "POST", "/scan/test?code=TAG1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 scan test, got %d body=%s", st, string(body))
	}
	var resp scanPayload
	_ = json.Unmarshal(body, &resp)
	if resp.Status != "ACTIVE" || resp.GoodSamaritanOffer.Copy == "" {
		t.Fatalf("unexpected scan test payload, body=%s", string(body))
	}
}

func TestHTTP_Diagnostics(t *testing.T) {
	ts := newServer(t)

	{
		st, body := doReq(t, ts.URL, "GET", "/", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 root, got %d", st)
		}
		var resp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Message == "" {
			t.Fatalf("expected liveness message, body=%s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/test", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 diagnostics, got %d", st)
		}
		var resp struct {
			Backend     string   `json:"backend"`
			Database    string   `json:"database"`
			Collections []string `json:"collections"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Backend != "running" || resp.Database != "memory" || len(resp.Collections) == 0 {
			t.Fatalf("unexpected diagnostics, body=%s", string(body))
		}
	}
}

// scanPayload refleja el contrato público del escaneo.
type scanPayload struct {
	Status string `json:"status"`
	Pet    struct {
		Name    *string  `json:"name"`
		Photos  []string `json:"photos"`
		Medical struct {
			Notes     *string `json:"notes"`
			Allergies *string `json:"allergies"`
		} `json:"medical"`
	} `json:"pet"`
	Contact struct {
		Visibility string  `json:"visibility"`
		Phone      *string `json:"phone"`
	} `json:"contact"`
	GoodSamaritanOffer struct {
		Headline string `json:"headline"`
		Copy     string `json:"copy"`
	} `json:"good_samaritan_offer"`
	PremiumAlert *struct {
		Type      string `json:"type"`
		Delivered bool   `json:"delivered"`
		Channel   string `json:"channel"`
		GPS       struct {
			Lat      *float64 `json:"lat"`
			Lng      *float64 `json:"lng"`
			Accuracy *float64 `json:"accuracy"`
		} `json:"gps"`
	} `json:"premium_alert"`
}

type couponPayload struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Offer    string `json:"offer"`
	Redeemed bool   `json:"redeemed"`
}

func createUser(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/google", payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 auth upsert, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("auth upsert: missing id body=%s", string(body))
	}
	return resp.ID
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func activateTag(t *testing.T, baseURL, code, userID string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/tags/activate", map[string]any{
		"code":    code,
		"user_id": userID,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 activate %s, got %d body=%s", code, st, string(body))
	}
}

func linkTag(t *testing.T, baseURL, code, petID string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/tags/link", map[string]any{
		"code":   code,
		"pet_id": petID,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 link %s, got %d body=%s", code, st, string(body))
	}
}

func markReunion(t *testing.T, baseURL, code string) couponPayload {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/reunion", map[string]any{"code": code})
	if st != http.StatusOK {
		t.Fatalf("expected 200 reunion, got %d body=%s", st, string(body))
	}

	var resp couponPayload
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("reunion: missing id body=%s", string(body))
	}
	return resp
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
