// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the site.

# Domain Types

  - Question: poll text, publication date, and owned choices
  - Choice: selectable option with a vote counter

A Question whose PubDate is the zero time was never given a date. Use
HasPubDate rather than comparing against time.Time{} directly.

# Request Types

  - CreateQuestionRequest: question_text plus pub_date or days offset
  - AddChoiceRequest: choice_text

# Response Types

  - CreateQuestionResponse: question_id
  - AddChoiceResponse: choice_id
  - QuestionListResponse: latest_question_list
  - QuestionDetailResponse: question, choices
  - VisitResponse: count
  - ErrorResponse: error, message

# Constants

Session keys:

	SessionKeyVisits = "num_visits"
*/
package models
