package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"fn7-backend/internal/config"
	"fn7-backend/internal/firebase"

	"github.com/joho/godotenv"
)

// custom-token mints a Firebase custom token for a uid. Exchange it for an ID
// token with the client SDK and send that as "Authorization: Bearer <token>".
func main() {
	uid := flag.String("uid", "", "target firebase uid")
	claimsJSON := flag.String("claims", "", `optional custom claims as JSON, e.g. '{"staff":true}'`)
	flag.Parse()
	if *uid == "" {
		log.Fatal("uid is required: -uid=xxxxx")
	}

	_ = godotenv.Load()
	ctx := context.Background()
	cfg := config.Load()

	var claims map[string]interface{}
	if *claimsJSON != "" {
		if err := json.Unmarshal([]byte(*claimsJSON), &claims); err != nil {
			log.Fatalf("invalid -claims: %v", err)
		}
	}

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("app.Auth: %v", err)
	}

	var token string
	if len(claims) > 0 {
		token, err = authClient.CustomTokenWithClaims(ctx, *uid, claims)
	} else {
		token, err = authClient.CustomToken(ctx, *uid)
	}
	if err != nil {
		log.Fatalf("CustomToken: %v", err)
	}

	fmt.Println(token)
}
