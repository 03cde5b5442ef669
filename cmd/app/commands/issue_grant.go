package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	grantsUseCase "github.com/allisson/grants/internal/grants/usecase"
	"github.com/allisson/grants/internal/notification"
)

// RunIssueGrant issues an access grant manually, outside the webhook flow.
// Useful for refunds handled by hand, support requests, and giveaways. The
// payment id still participates in the single-winner contract: reusing an id
// returns the existing grant instead of creating a second one. With notify
// enabled the delivery email is enqueued exactly as the webhook flow does.
//
// Requirements: Database must be migrated and accessible.
func RunIssueGrant(
	ctx context.Context,
	issuerUseCase grantsUseCase.IssuerUseCase,
	dispatcher DeliveryDispatcher,
	logger *slog.Logger,
	w io.Writer,
	paymentID string,
	ownerEmail string,
	tierStr string,
	notify bool,
	publicBaseURL string,
	format string,
) error {
	tier, err := parseTier(tierStr)
	if err != nil {
		return err
	}

	logger.Info("issuing grant manually",
		slog.String("payment_id", paymentID),
		slog.String("tier", string(tier)),
		slog.Bool("notify", notify),
	)

	grant, created, err := issuerUseCase.Issue(ctx, paymentID, ownerEmail, tier)
	if err != nil {
		return fmt.Errorf("failed to issue grant: %w", err)
	}

	link := fmt.Sprintf("%s/v1/access?token=%s", publicBaseURL, grant.Token)

	if notify && created {
		if !dispatcher.Dispatch(notification.DeliveryTask{
			OwnerEmail: grant.OwnerEmail,
			Tier:       grant.Tier,
			Link:       link,
		}) {
			logger.Warn("delivery email not enqueued", slog.String("payment_id", paymentID))
		}
	}

	// Output result based on format
	if format == "json" {
		outputIssueGrantJSON(w, grant, created, link)
	} else {
		outputIssueGrantText(w, grant, created, link)
	}

	logger.Info("grant issuance completed",
		slog.String("payment_id", paymentID),
		slog.Bool("created", created),
	)

	return nil
}

// outputIssueGrantText outputs the result in human-readable text format.
func outputIssueGrantText(w io.Writer, grant *grantsDomain.AccessGrant, created bool, link string) {
	if created {
		fmt.Fprintln(w, "Grant issued successfully")
	} else {
		fmt.Fprintln(w, "Grant already existed for this payment, returning existing grant")
	}
	fmt.Fprintf(w, "ID:          %s\n", grant.ID)
	fmt.Fprintf(w, "Token:       %s\n", grant.Token)
	fmt.Fprintf(w, "Owner Email: %s\n", grant.OwnerEmail)
	fmt.Fprintf(w, "Tier:        %s\n", grant.Tier)
	fmt.Fprintf(w, "Expires At:  %s\n", grant.ExpiresAt)
	fmt.Fprintf(w, "Link:        %s\n", link)
}

// outputIssueGrantJSON outputs the result in JSON format for machine consumption.
func outputIssueGrantJSON(w io.Writer, grant *grantsDomain.AccessGrant, created bool, link string) {
	result := map[string]interface{}{
		"id":          grant.ID,
		"token":       grant.Token,
		"owner_email": grant.OwnerEmail,
		"payment_id":  grant.PaymentID,
		"tier":        grant.Tier,
		"issued_at":   grant.IssuedAt,
		"expires_at":  grant.ExpiresAt,
		"created":     created,
		"link":        link,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(w, string(jsonBytes))
}
