// Command issuetoken prints an access token for the rental API.
//
//	issuetoken -sub desk-1 -role CLERK
package main

import (
    "flag"
    "fmt"
    "log"

    "github.com/joho/godotenv"

    "github.com/iliyamo/vehicle-rental/internal/config"
    "github.com/iliyamo/vehicle-rental/internal/utils"
)

func main() {
    sub := flag.String("sub", "", "operator the token is issued to")
    role := flag.String("role", utils.RoleClerk, "CLERK or ADMIN")
    flag.Parse()

    if *sub == "" {
        log.Fatal("-sub is required")
    }
    if *role != utils.RoleClerk && *role != utils.RoleAdmin {
        log.Fatalf("unknown role %q", *role)
    }

    _ = godotenv.Load()
    cfg := config.LoadTokenConfig()
    tok, err := utils.NewAccessToken(cfg.JWTSecret, *sub, *role, cfg.AccessTTLMin)
    if err != nil {
        log.Fatalf("sign token: %v", err)
    }
    fmt.Println(tok.Token)
    log.Printf("expires %s", tok.Exp.Format("2006-01-02 15:04:05 MST"))
}
