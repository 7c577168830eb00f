package handlers_test

import (
	"net/http"
	"testing"
)

func TestWishlistRoundTrip(t *testing.T) {
	app := newAPIApp(t)
	tok := loginAs(t, app, "alice@webstore.test")

	save := jsonReq(t, "POST", "/api/wishlist", map[string]string{"productId": "hoodie-zip"})
	save.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(save)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save: want 201, got %d", resp.StatusCode)
	}

	list := jsonReq(t, "GET", "/api/wishlist", nil)
	list.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(list)
	if err != nil {
		t.Fatal(err)
	}
	items, _ := decodeBody(t, resp)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}

	del := jsonReq(t, "DELETE", "/api/wishlist/hoodie-zip", nil)
	del.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(del)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unsave: want 204, got %d", resp.StatusCode)
	}

	list2 := jsonReq(t, "GET", "/api/wishlist", nil)
	list2.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(list2)
	if err != nil {
		t.Fatal(err)
	}
	items, _ = decodeBody(t, resp)["items"].([]any)
	if len(items) != 0 {
		t.Fatalf("item survived removal: %v", items)
	}
}

func TestWishlistRejectsBadProductID(t *testing.T) {
	app := newAPIApp(t)

	resp, err := app.Test(jsonReq(t, "POST", "/api/wishlist", map[string]string{"productId": ""}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}
