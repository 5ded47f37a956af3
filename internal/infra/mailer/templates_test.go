package mailer

import (
	"strings"
	"testing"

	"vnnews/internal/domain/entity"
)

const baseURL = "https://vnnews.vn"

func TestPasswordResetMessage(t *testing.T) {
	tests := []struct {
		name        string
		site        entity.Site
		wantSubject string
		wantPhrase  string
	}{
		{"vietnamese", entity.SiteVN, "Yêu cầu đặt lại mật khẩu", "mật khẩu mới"},
		{"english", entity.SiteEN, "Password reset request", "new password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := passwordResetMessage(tt.site, baseURL, "tok-123")
			if !strings.Contains(msg.subject, tt.wantSubject) {
				t.Errorf("subject = %q, want it to contain %q", msg.subject, tt.wantSubject)
			}
			if !strings.HasPrefix(msg.subject, subjectPrefix) {
				t.Errorf("subject = %q, want prefix %q", msg.subject, subjectPrefix)
			}
			if !strings.Contains(msg.body, tt.wantPhrase) {
				t.Errorf("body missing %q:\n%s", tt.wantPhrase, msg.body)
			}
			wantLink := "https://vnnews.vn/auth/reset-password?token=tok-123"
			if !strings.Contains(msg.body, wantLink) {
				t.Errorf("body missing reset link %q:\n%s", wantLink, msg.body)
			}
		})
	}
}

func TestSubscriptionMessage_CarriesUnsubscribeLink(t *testing.T) {
	msg := subscriptionMessage(entity.SiteVN, baseURL, "unsub-9")
	wantLink := "https://vnnews.vn/newsletter/unsubscribe?token=unsub-9"
	if !strings.Contains(msg.body, wantLink) {
		t.Errorf("body missing unsubscribe link %q:\n%s", wantLink, msg.body)
	}
	if !strings.Contains(msg.subject, "Đăng ký") {
		t.Errorf("subject = %q, want Vietnamese confirmation", msg.subject)
	}
}

func TestDigestMessage_ListsArticles(t *testing.T) {
	articles := []*entity.Article{
		{Title: "Giá xăng tăng trở lại", Slug: "gia-xang-tang-tro-lai"},
		{Title: "Đội tuyển thắng đậm", Slug: "doi-tuyen-thang-dam"},
	}
	msg := digestMessage(entity.SiteVN, baseURL, "unsub-9", articles)
	for _, a := range articles {
		if !strings.Contains(msg.body, a.Title) {
			t.Errorf("body missing title %q", a.Title)
		}
		if !strings.Contains(msg.body, baseURL+"/articles/"+a.Slug) {
			t.Errorf("body missing link for %q", a.Slug)
		}
	}
	if !strings.Contains(msg.body, unsubscribeLink(baseURL, "unsub-9")) {
		t.Error("digest body missing unsubscribe link")
	}
}
