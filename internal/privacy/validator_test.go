package privacy

import "testing"

// TestValidCreditCard tests Luhn checksum and length validation
func TestValidCreditCard(t *testing.T) {
	t.Run("ValidNumbers", func(t *testing.T) {
		valid := []string{
			"4532148803436464",
			"4532-1488-0343-6464",
			"4532 1488 0343 6464",
			"5425233430109903",
			"374245455400126",
		}
		for _, card := range valid {
			if !ValidCreditCard(card) {
				t.Errorf("Card %q should pass validation", card)
			}
		}
	})

	t.Run("InvalidChecksum", func(t *testing.T) {
		if ValidCreditCard("4532148803436468") {
			t.Error("Card with broken checksum passed validation")
		}
	})

	t.Run("InvalidLength", func(t *testing.T) {
		if ValidCreditCard("453214") {
			t.Error("Too-short number passed validation")
		}
		if ValidCreditCard("45321488034364641234") {
			t.Error("Too-long number passed validation")
		}
	})
}

// TestValidSSN tests area, group, and serial rules
func TestValidSSN(t *testing.T) {
	t.Run("ValidNumbers", func(t *testing.T) {
		valid := []string{"123-45-6789", "123456789", "123 45 6789", "529-12-3456"}
		for _, ssn := range valid {
			if !ValidSSN(ssn) {
				t.Errorf("SSN %q should pass validation", ssn)
			}
		}
	})

	t.Run("InvalidArea", func(t *testing.T) {
		invalid := []string{
			"000-45-6789",
			"666-45-6789",
			"900-45-6789",
			"999-45-6789",
			"734-45-6789",
			"749-45-6789",
		}
		for _, ssn := range invalid {
			if ValidSSN(ssn) {
				t.Errorf("SSN %q has an unissued area number and should fail", ssn)
			}
		}
	})

	t.Run("InvalidGroupAndSerial", func(t *testing.T) {
		if ValidSSN("123-00-6789") {
			t.Error("Group 00 should fail")
		}
		if ValidSSN("123-45-0000") {
			t.Error("Serial 0000 should fail")
		}
	})

	t.Run("WrongLength", func(t *testing.T) {
		if ValidSSN("12-34-5678") {
			t.Error("Eight-digit value should fail")
		}
	})
}

// TestValidEmail tests structural email validation
func TestValidEmail(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		valid := []string{
			"john@example.com",
			"a.b@sub.example.co.uk",
			"x@y.io",
			// Local-part dot placement is left to the mail system.
			".leading@example.com",
			"double..dot@example.com",
		}
		for _, email := range valid {
			if !ValidEmail(email) {
				t.Errorf("Email %q should pass validation", email)
			}
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		invalid := []string{
			"no-at-sign.com",
			"two@@example.com",
			"user@nodot",
		}
		for _, email := range invalid {
			if ValidEmail(email) {
				t.Errorf("Email %q should fail validation", email)
			}
		}
	})
}

// TestValidPhone tests NANP and international length rules
func TestValidPhone(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		valid := []string{"(555) 123-4567", "555-123-4567", "+1 555 123 4567", "+44 20 7946 0958"}
		for _, phone := range valid {
			if !ValidPhone(phone) {
				t.Errorf("Phone %q should pass validation", phone)
			}
		}
	})

	t.Run("BadAreaCode", func(t *testing.T) {
		invalid := []string{"(155) 123-4567", "911-123-4567", "988-123-4567"}
		for _, phone := range invalid {
			if ValidPhone(phone) {
				t.Errorf("Phone %q should fail validation", phone)
			}
		}
	})

	t.Run("WrongLength", func(t *testing.T) {
		if ValidPhone("123-4567") {
			t.Error("Seven-digit value should fail")
		}
	})
}

// TestValidIPAddress tests IPv4 octet validation
func TestValidIPAddress(t *testing.T) {
	valid := []string{"192.168.1.1", "0.0.0.0", "255.255.255.255", "10.0.42.7"}
	for _, ip := range valid {
		if !ValidIPAddress(ip) {
			t.Errorf("IP %q should pass validation", ip)
		}
	}

	invalid := []string{"256.1.1.1", "1.2.3", "1.2.3.4.5", "192.168.one.1"}
	for _, ip := range invalid {
		if ValidIPAddress(ip) {
			t.Errorf("IP %q should fail validation", ip)
		}
	}
}

// TestValidDateOfBirth tests calendar plausibility checks
func TestValidDateOfBirth(t *testing.T) {
	valid := []string{"01/15/1985", "12-31-1999", "1985-01-15", "13/15/1985"}
	for _, dob := range valid {
		if !ValidDateOfBirth(dob) {
			t.Errorf("DOB %q should pass validation", dob)
		}
	}

	invalid := []string{"00/15/1985", "01/32/1985", "01/15/1899", "01/15/3000"}
	for _, dob := range invalid {
		if ValidDateOfBirth(dob) {
			t.Errorf("DOB %q should fail validation", dob)
		}
	}
}

// TestValidPassport tests the passport format check
func TestValidPassport(t *testing.T) {
	if !ValidPassport("A1234567") {
		t.Error("A1234567 should pass validation")
	}
	if !ValidPassport("AB123456") {
		t.Error("AB123456 should pass validation")
	}
	if ValidPassport("ABC12345") {
		t.Error("Three-letter prefix should fail")
	}
	if ValidPassport("A12345") {
		t.Error("Too few digits should fail")
	}
}
